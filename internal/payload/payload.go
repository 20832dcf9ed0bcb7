// Package payload parses webhook bodies and classifies them by event type.
// Bodies are dynamically shaped, so only the routing and identity fields are
// extracted; the document itself is kept verbatim.
package payload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	go_json "github.com/goccy/go-json"
)

var ErrInvalidJSON = errors.New("invalid JSON payload")

var emptyObject = []byte("{}")

type Envelope struct {
	Event       Event
	TerraUserID *string
	Provider    *string
	ReferenceID *string
	// Document is the JSON that was parsed; an empty body is normalised to {}.
	Document []byte
}

func (e Envelope) Type() string   { return e.Event.Type() }
func (e Envelope) Family() Family { return e.Event.Family() }

// Parse decodes body and extracts type and identity fields. Any syntactically
// valid JSON document is accepted; non-objects classify as TypeUnknown.
func Parse(body []byte) (Envelope, error) {
	doc := body
	if len(bytes.TrimSpace(doc)) == 0 {
		doc = emptyObject
	}

	dec := go_json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return Envelope{}, fmt.Errorf("%w: trailing data after document", ErrInvalidJSON)
	}

	root, _ := v.(map[string]any)
	user, _ := root["user"].(map[string]any)


	env := Envelope{
		Event:       Classify(typeName(root["type"], root["event_type"])),
		TerraUserID: firstString(user["user_id"], root["user_id"]),
		ReferenceID: firstString(user["reference_id"], root["reference_id"]),
		Document:    doc,
	}
	if p := firstString(user["provider"], root["provider"]); p != nil {
		env.Provider = ptr(strings.ToLower(*p))
	}

	return env, nil
}

// firstString returns the first value that is a non-empty string or a number.
func firstString(values ...any) *string {
	for _, v := range values {
		switch t := v.(type) {
		case string:
			if t != "" {
				return &t
			}
		case go_json.Number:
			if s := t.String(); s != "" && s != "0" {
				return &s
			}
		}
	}
	return nil
}

// typeName is firstString that also accepts a true boolean as "true".
func typeName(values ...any) string {
	for _, v := range values {
		if b, ok := v.(bool); ok {
			if b {
				return "true"
			}
			continue
		}
		if s := firstString(v); s != nil {
			return *s
		}
	}
	return TypeUnknown
}

func ptr[T any](v T) *T { return &v }
