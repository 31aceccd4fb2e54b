package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// timeLayouts are tried in order when parsing fixture values. Event
// timestamps are RFC 3339 instants; harvest dates are date-only.
var timeLayouts = []string{time.RFC3339, "2006-01-02"}

// Timestamp wraps time.Time so fixture files can carry both full instants
// and date-only values. The zero value means "not recorded" and marshals
// as null.
type Timestamp struct {
	time.Time
}

// NewTimestamp builds a Timestamp from a time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses s using the known fixture layouts.
func ParseTimestamp(s string) (Timestamp, error) {
	if s == "" {
		return Timestamp{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("models: unrecognised timestamp %q", s)
}

// MustTimestamp is ParseTimestamp for fixture literals; it panics on
// malformed input.
func MustTimestamp(s string) Timestamp {
	t, err := ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTimestamp(*s)
	if err != nil {
		return err
	}
	t.Time = parsed.Time
	return nil
}

// Display renders the timestamp the way dashboards show it,
// e.g. "Sep 16, 2023 2:15 PM". Date-only values render without a time.
func (t Timestamp) Display() string {
	if t.IsZero() {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("Jan 2, 2006 3:04 PM")
}

// Value implements driver.Valuer so Timestamp columns persist via GORM.
func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Time, nil
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
	case time.Time:
		t.Time = v
	case string:
		parsed, err := ParseTimestamp(v)
		if err != nil {
			return err
		}
		t.Time = parsed.Time
	case []byte:
		return t.Scan(string(v))
	default:
		return fmt.Errorf("models: cannot scan %T into Timestamp", src)
	}
	return nil
}
