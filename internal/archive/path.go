package archive

import (
	"strings"
	"time"
)

const (
	unknownSegment = "unknown"
	objectExt      = ".json"
)

// Path returns the object key for a payload received at t:
// YYYY/MM/DD/<type>/<terra user id|unknown>/<timestamp>.json.
func Path(t time.Time, eventType string, terraUserID *string) string {
	t = t.UTC()
	ts := timestamp(t)

	user := unknownSegment
	if terraUserID != nil {
		user = *terraUserID
	}

	return strings.Join([]string{
		ts[0:4],
		ts[5:7],
		ts[8:10],
		segment(eventType),
		segment(user),
		ts + objectExt,
	}, "/")
}

// timestamp renders t like 2024-05-01T12-34-56-789Z: ISO-8601 with
// millisecond precision and the separators that are awkward in keys replaced.
func timestamp(t time.Time) string {
	s := t.Format("2006-01-02T15:04:05.000Z")
	return strings.NewReplacer(":", "-", ".", "-").Replace(s)
}

// segment keeps caller-controlled values inside a single path element.
func segment(s string) string {
	s = strings.NewReplacer("/", "_", `\`, "_").Replace(strings.TrimSpace(s))
	if strings.Trim(s, ".") == "" {
		return unknownSegment
	}
	return s
}
