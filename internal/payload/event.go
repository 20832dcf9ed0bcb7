package payload

import "strings"

type Family string

const (
	FamilyData Family = "data"
	FamilyMisc Family = "misc"
)

// TypeUnknown is the type of payloads carrying neither type nor event_type.
const TypeUnknown = "unknown"

// Event is the classified shape of a delivery. The set of variants is closed:
// DataEvent, StatusEvent and UnknownEvent.
type Event interface {
	payloadEvent()
	Type() string
	Family() Family
}

// DataEvent carries substantive health data.
type DataEvent struct {
	kind string
}

func (DataEvent) payloadEvent()  {}
func (e DataEvent) Type() string { return e.kind }
func (DataEvent) Family() Family { return FamilyData }

// StatusEvent is a connection or processing notice the provider documents.
type StatusEvent struct {
	kind string
}

func (StatusEvent) payloadEvent()  {}
func (e StatusEvent) Type() string { return e.kind }
func (StatusEvent) Family() Family { return FamilyMisc }

// UnknownEvent is any type outside the documented sets, including TypeUnknown.
type UnknownEvent struct {
	kind string
}

func (UnknownEvent) payloadEvent()  {}
func (e UnknownEvent) Type() string { return e.kind }
func (UnknownEvent) Family() Family { return FamilyMisc }

var dataTypes = map[string]struct{}{
	"activity":     {},
	"sleep":        {},
	"daily":        {},
	"nutrition":    {},
	"body":         {},
	"menstruation": {},
}

var statusTypes = map[string]struct{}{
	"auth":                     {},
	"deauth":                   {},
	"user_reauth":              {},
	"access_revoked":           {},
	"connection_error":         {},
	"google_no_datasource":     {},
	"permission_change":        {},
	"processing":               {},
	"large_request_processing": {},
	"large_request_sending":    {},
	"rate_limit_hit":           {},
	"healthcheck":              {},
	"athlete":                  {},
}

// Classify maps an event type to its variant. Matching is exact on the
// lower-cased name; surrounding whitespace is kept and makes it unknown.
func Classify(eventType string) Event {
	kind := strings.ToLower(eventType)
	if kind == "" {
		return UnknownEvent{kind: TypeUnknown}
	}
	if _, ok := dataTypes[kind]; ok {
		return DataEvent{kind: kind}
	}
	if _, ok := statusTypes[kind]; ok {
		return StatusEvent{kind: kind}
	}
	return UnknownEvent{kind: kind}
}
