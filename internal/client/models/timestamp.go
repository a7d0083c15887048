package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Timestamp is the time of a log entry. Entries written by this client
// carry RFC 3339 text; anything else found in a slot (locale strings from
// older writers, epoch milliseconds) is accepted and kept as-is so a single
// foreign entry never invalidates the whole log.
type Timestamp struct {
	Time time.Time
	// Raw holds the stored text when it is not RFC 3339. It is written
	// back unchanged.
	Raw string
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// IsZero reports whether neither a time nor raw text is set.
func (ts Timestamp) IsZero() bool {
	return ts.Raw == "" && ts.Time.IsZero()
}

// Format renders the time in local time using layout, or the raw text.
func (ts Timestamp) Format(layout string) string {
	if ts.Raw != "" {
		return ts.Raw
	}
	if ts.Time.IsZero() {
		return ""
	}
	return ts.Time.Local().Format(layout)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.Raw != "" {
		return json.Marshal(ts.Raw)
	}
	if ts.Time.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(ts.Time.Format(time.RFC3339Nano))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	*ts = Timestamp{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			return nil
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			ts.Time = t
			return nil
		}
		ts.Raw = s
		return nil
	}

	var ms json.Number
	if err := json.Unmarshal(data, &ms); err == nil {
		if n, err := ms.Int64(); err == nil {
			ts.Time = time.UnixMilli(n).UTC()
			return nil
		}
	}

	ts.Raw = string(data)
	return nil
}
