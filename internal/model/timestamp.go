package model

import (
	"encoding/json"
	"time"
)

// TimestampKind tags which representation a Timestamp carries.
type TimestampKind int

const (
	TimestampMissing TimestampKind = iota
	TimestampDate
	TimestampDateTime
	TimestampText
)

// Timestamp holds a stored date or date-time in whatever shape storage
// handed it over: a calendar date, a date-time, free text, or nothing.
type Timestamp struct {
	Kind TimestampKind
	Time time.Time
	Text string
}

func DateOf(t time.Time) Timestamp {
	y, m, d := t.Date()
	return Timestamp{Kind: TimestampDate, Time: time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

func DateTimeOf(t time.Time) Timestamp {
	return Timestamp{Kind: TimestampDateTime, Time: t}
}

func TextOf(s string) Timestamp {
	return Timestamp{Kind: TimestampText, Text: s}
}

// TimestampFromDB maps a raw driver value onto a Timestamp. The sqlite
// driver returns time.Time for DATE/DATETIME columns whose text parses and
// the raw string otherwise.
func TimestampFromDB(v any) Timestamp {
	switch x := v.(type) {
	case nil:
		return Timestamp{}
	case time.Time:
		return DateTimeOf(x)
	case string:
		return TextOf(x)
	case []byte:
		return TextOf(string(x))
	default:
		return Timestamp{}
	}
}

func (t Timestamp) IsMissing() bool {
	return t.Kind == TimestampMissing
}

// String renders the value the way it would be exported.
func (t Timestamp) String() string {
	switch t.Kind {
	case TimestampDate:
		return t.Time.Format("2006-01-02")
	case TimestampDateTime:
		return t.Time.Format("2006-01-02T15:04:05")
	case TimestampText:
		return t.Text
	default:
		return ""
	}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsMissing() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		*t = Timestamp{}
		return nil
	}
	*t = TextOf(*s)
	return nil
}
