package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/garrettladley/terrahook/internal/version"
	"github.com/garrettladley/terrahook/internal/xhttp"
)

func Error(err error) slog.Attr {
	const errorKey = "error"
	return slog.String(errorKey, err.Error())
}

func RequestID(requestID string) slog.Attr {
	const requestIDKey = "request_id"
	return slog.String(requestIDKey, requestID)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func RequestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func IP(ip string) slog.Attr {
	const ipKey = "ip"
	return slog.String(ipKey, ip)
}

func RequestIP(r *http.Request) slog.Attr {
	return IP(xhttp.ClientAddress(r))
}

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

func RetryAfter(d time.Duration) slog.Attr {
	const retryAfterKey = "retry_after"
	return slog.Duration(retryAfterKey, d)
}

func EventType(eventType string) slog.Attr {
	const eventTypeKey = "event_type"
	return slog.String(eventTypeKey, eventType)
}

func Family(family string) slog.Attr {
	const familyKey = "family"
	return slog.String(familyKey, family)
}

// TerraUserID logs an optional terra user id; nil is logged as empty.
func TerraUserID(id *string) slog.Attr {
	const terraUserIDKey = "terra_user_id"
	return slog.String(terraUserIDKey, deref(id))
}

func Provider(provider *string) slog.Attr {
	const providerKey = "provider"
	return slog.String(providerKey, deref(provider))
}

func ReferenceID(referenceID *string) slog.Attr {
	const referenceIDKey = "reference_id"
	return slog.String(referenceIDKey, deref(referenceID))
}

func ArchivePath(path string) slog.Attr {
	const archivePathKey = "archive_path"
	return slog.String(archivePathKey, path)
}

func Bucket(bucket string) slog.Attr {
	const bucketKey = "bucket"
	return slog.String(bucketKey, bucket)
}

func Table(table string) slog.Attr {
	const tableKey = "table"
	return slog.String(tableKey, table)
}

func Step(step string) slog.Attr {
	const stepKey = "step"
	return slog.String(stepKey, step)
}

func Strategy(strategy string) slog.Attr {
	const strategyKey = "strategy"
	return slog.String(strategyKey, strategy)
}

func RowsAffected(n int64) slog.Attr {
	const rowsAffectedKey = "rows_affected"
	return slog.Int64(rowsAffectedKey, n)
}

func Size(n int) slog.Attr {
	const sizeKey = "size"
	return slog.Int(sizeKey, n)
}

// Payload logs raw bytes verbatim so a lost archive write can be replayed by hand.
func Payload(body []byte) slog.Attr {
	const payloadKey = "payload"
	return slog.String(payloadKey, string(body))
}

func Missing(names []string) slog.Attr {
	const missingKey = "missing"
	return slog.Any(missingKey, names)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
