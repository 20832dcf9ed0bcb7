package payload

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type parsed struct {
	Type        string
	Family      Family
	TerraUserID *string
	Provider    *string
	ReferenceID *string
	Document    string
}

func flatten(e Envelope) parsed {
	return parsed{
		Type:        e.Type(),
		Family:      e.Family(),
		TerraUserID: e.TerraUserID,
		Provider:    e.Provider,
		ReferenceID: e.ReferenceID,
		Document:    string(e.Document),
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want parsed
	}{
		{
			name: "nested user",
			body: `{"type":"activity","user":{"user_id":"terra123","reference_id":"user-abc","provider":"GARMIN"}}`,
			want: parsed{
				Type:        "activity",
				Family:      FamilyData,
				TerraUserID: ptr("terra123"),
				Provider:    ptr("garmin"),
				ReferenceID: ptr("user-abc"),
				Document:    `{"type":"activity","user":{"user_id":"terra123","reference_id":"user-abc","provider":"GARMIN"}}`,
			},
		},
		{
			name: "top-level identity fallbacks",
			body: `{"event_type":"Sleep","user_id":"t-9","provider":"Oura","reference_id":"u-1"}`,
			want: parsed{
				Type:        "sleep",
				Family:      FamilyData,
				TerraUserID: ptr("t-9"),
				Provider:    ptr("oura"),
				ReferenceID: ptr("u-1"),
				Document:    `{"event_type":"Sleep","user_id":"t-9","provider":"Oura","reference_id":"u-1"}`,
			},
		},
		{
			name: "type wins over event_type",
			body: `{"type":"auth_error","event_type":"activity"}`,
			want: parsed{Type: "auth_error", Family: FamilyMisc, Document: `{"type":"auth_error","event_type":"activity"}`},
		},
		{
			name: "empty type falls back to event_type",
			body: `{"type":"","event_type":"daily"}`,
			want: parsed{Type: "daily", Family: FamilyData, Document: `{"type":"","event_type":"daily"}`},
		},
		{
			name: "nested user id wins over top-level",
			body: `{"type":"body","user":{"user_id":"inner"},"user_id":"outer"}`,
			want: parsed{Type: "body", Family: FamilyData, TerraUserID: ptr("inner"), Document: `{"type":"body","user":{"user_id":"inner"},"user_id":"outer"}`},
		},
		{
			name: "numeric user id",
			body: `{"type":"activity","user_id":1234567890123}`,
			want: parsed{Type: "activity", Family: FamilyData, TerraUserID: ptr("1234567890123"), Document: `{"type":"activity","user_id":1234567890123}`},
		},
		{
			name: "no type",
			body: `{"user":{"user_id":"x"}}`,
			want: parsed{Type: TypeUnknown, Family: FamilyMisc, TerraUserID: ptr("x"), Document: `{"user":{"user_id":"x"}}`},
		},
		{
			name: "non-string type ignored",
			body: `{"type":{"nested":true}}`,
			want: parsed{Type: TypeUnknown, Family: FamilyMisc, Document: `{"type":{"nested":true}}`},
		},
		{
			name: "true type stringified",
			body: `{"type":true}`,
			want: parsed{Type: "true", Family: FamilyMisc, Document: `{"type":true}`},
		},
		{
			name: "false type falls back to event_type",
			body: `{"type":false,"event_type":"sleep"}`,
			want: parsed{Type: "sleep", Family: FamilyData, Document: `{"type":false,"event_type":"sleep"}`},
		},
		{
			name: "padded type is not trimmed",
			body: `{"type":" activity "}`,
			want: parsed{Type: " activity ", Family: FamilyMisc, Document: `{"type":" activity "}`},
		},
		{
			name: "empty body normalised",
			body: "",
			want: parsed{Type: TypeUnknown, Family: FamilyMisc, Document: `{}`},
		},
		{
			name: "array document",
			body: `[{"type":"activity"}]`,
			want: parsed{Type: TypeUnknown, Family: FamilyMisc, Document: `[{"type":"activity"}]`},
		},
		{
			name: "null document",
			body: `null`,
			want: parsed{Type: TypeUnknown, Family: FamilyMisc, Document: `null`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env, err := Parse([]byte(tt.body))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, flatten(env)); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()

	for _, body := range []string{
		`{`,
		`{"type":"activity"`,
		`not json`,
		`{"type":"activity"} trailing`,
		`{} {}`,
	} {
		_, err := Parse([]byte(body))
		if !errors.Is(err, ErrInvalidJSON) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidJSON", body, err)
		}
	}
}

func TestParseIsDeterministic(t *testing.T) {
	t.Parallel()

	body := []byte(`{"type":"Nutrition","user":{"user_id":"u","provider":"Fitbit"}}`)
	first, err := Parse(body)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	for range 10 {
		again, err := Parse(body)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if diff := cmp.Diff(flatten(first), flatten(again)); diff != "" {
			t.Fatalf("repeat Parse() differs (-first +again):\n%s", diff)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		family  Family
		variant Event
	}{
		{input: "activity", want: "activity", family: FamilyData, variant: DataEvent{}},
		{input: "Activity", want: "activity", family: FamilyData, variant: DataEvent{}},
		{input: "ACTIVITY", want: "activity", family: FamilyData, variant: DataEvent{}},
		{input: " sleep ", want: " sleep ", family: FamilyMisc, variant: UnknownEvent{}},
		{input: "daily", want: "daily", family: FamilyData, variant: DataEvent{}},
		{input: "nutrition", want: "nutrition", family: FamilyData, variant: DataEvent{}},
		{input: "body", want: "body", family: FamilyData, variant: DataEvent{}},
		{input: "menstruation", want: "menstruation", family: FamilyData, variant: DataEvent{}},
		{input: "auth", want: "auth", family: FamilyMisc, variant: StatusEvent{}},
		{input: "Deauth", want: "deauth", family: FamilyMisc, variant: StatusEvent{}},
		{input: "auth_error", want: "auth_error", family: FamilyMisc, variant: UnknownEvent{}},
		{input: "activities", want: "activities", family: FamilyMisc, variant: UnknownEvent{}},
		{input: "", want: TypeUnknown, family: FamilyMisc, variant: UnknownEvent{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got := Classify(tt.input)
			if got.Type() != tt.want {
				t.Errorf("Classify(%q).Type() = %q, want %q", tt.input, got.Type(), tt.want)
			}
			if got.Family() != tt.family {
				t.Errorf("Classify(%q).Family() = %q, want %q", tt.input, got.Family(), tt.family)
			}
			if !sameVariant(got, tt.variant) {
				t.Errorf("Classify(%q) = %T, want %T", tt.input, got, tt.variant)
			}
		})
	}
}

func sameVariant(a, b Event) bool {
	switch a.(type) {
	case DataEvent:
		_, ok := b.(DataEvent)
		return ok
	case StatusEvent:
		_, ok := b.(StatusEvent)
		return ok
	case UnknownEvent:
		_, ok := b.(UnknownEvent)
		return ok
	}
	return false
}
