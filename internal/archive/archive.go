// Package archive stores raw webhook payloads in an S3-compatible bucket.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"golang.org/x/sync/singleflight"

	"github.com/garrettladley/terrahook/internal/xslog"
)

const (
	DefaultBucket = "terra-payloads"

	contentTypeJSON = "application/json"
	regionUSEast1   = "us-east-1"

	metaEventType   = "event-type"
	metaTerraUserID = "terra-user-id"
)

// S3API is the subset of *s3.Client used to archive payloads.
type S3API interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var _ S3API = (*s3.Client)(nil)

type Object struct {
	Body        []byte
	EventType   string
	TerraUserID *string
	ReceivedAt  time.Time
}

type Writer struct {
	client S3API
	bucket string
	region string
	group  singleflight.Group
}

func NewWriter(client S3API, bucket, region string) *Writer {
	if bucket == "" {
		bucket = DefaultBucket
	}
	return &Writer{client: client, bucket: bucket, region: region}
}

func (w *Writer) Bucket() string { return w.bucket }

// Write ensures the bucket exists and stores obj under its deterministic
// path, overwriting any object already at that key. The path is returned
// even when the write fails so callers can report and log it.
func (w *Writer) Write(ctx context.Context, obj Object) (string, error) {
	path := Path(obj.ReceivedAt, obj.EventType, obj.TerraUserID)

	w.ensureBucket(ctx)

	meta := map[string]string{metaEventType: obj.EventType}
	if obj.TerraUserID != nil {
		meta[metaTerraUserID] = *obj.TerraUserID
	}

	_, err := w.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(w.bucket),
		Key:           aws.String(path),
		Body:          bytes.NewReader(obj.Body),
		ContentLength: aws.Int64(int64(len(obj.Body))),
		ContentType:   aws.String(contentTypeJSON),
		Metadata:      meta,
	})
	if err != nil {
		return path, fmt.Errorf("put object %s/%s: %w", w.bucket, path, err)
	}
	return path, nil
}

// ensureBucket creates the bucket when it cannot be found. Concurrent callers
// share one check. Creation failures are logged only; the following put
// surfaces whether the bucket is really unusable.
func (w *Writer) ensureBucket(ctx context.Context) {
	_, _, _ = w.group.Do(w.bucket, func() (any, error) {
		logger := xslog.FromContext(ctx)

		if _, err := w.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(w.bucket)}); err == nil {
			return nil, nil
		}

		input := &s3.CreateBucketInput{Bucket: aws.String(w.bucket)}
		if w.region != "" && w.region != regionUSEast1 {
			input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
				LocationConstraint: types.BucketLocationConstraint(w.region),
			}
		}

		_, err := w.client.CreateBucket(ctx, input)
		switch {
		case err == nil:
			logger.InfoContext(ctx, "created archive bucket", xslog.Bucket(w.bucket))
		case isAlreadyExists(err):
			// lost a creation race; the bucket is there
		default:
			logger.WarnContext(ctx, "failed to create archive bucket",
				xslog.Bucket(w.bucket),
				xslog.Error(err),
			)
		}
		return nil, nil
	})
}

func isAlreadyExists(err error) bool {
	var owned *types.BucketAlreadyOwnedByYou
	if errors.As(err, &owned) {
		return true
	}
	var exists *types.BucketAlreadyExists
	if errors.As(err, &exists) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "BucketAlreadyOwnedByYou", "BucketAlreadyExists":
			return true
		}
		return strings.Contains(strings.ToLower(apiErr.ErrorMessage()), "already exists")
	}
	return false
}
