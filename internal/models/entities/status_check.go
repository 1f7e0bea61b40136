package entities

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the ISO-8601 form status timestamps are stored in.
// Microsecond precision, numeric UTC offset (always +00:00).
const TimestampLayout = "2006-01-02T15:04:05.999999-07:00"

// naive ISO-8601 layouts written by older clients without an offset
var legacyTimestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Document is the schema-flexible form a record takes inside a store.
type Document map[string]any

// StatusCheck is a single client status ping.
type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewStatusCheck creates a record with a fresh id and the current UTC time.
func NewStatusCheck(clientName string) StatusCheck {
	return StatusCheck{
		ID:         uuid.NewString(),
		ClientName: clientName,
		Timestamp:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

// Document returns the storage form of the record with the timestamp
// serialized as an ISO-8601 string.
func (s StatusCheck) Document() Document {
	return Document{
		"id":          s.ID,
		"client_name": s.ClientName,
		"timestamp":   FormatTimestamp(s.Timestamp),
	}
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp decodes an ISO-8601 string. Strings without an offset are
// taken to be UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range legacyTimestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", raw)
}

// StatusCheckFromDocument maps a stored document back to a StatusCheck.
// Fields other than id, client_name and timestamp are ignored.
func StatusCheckFromDocument(doc Document) (StatusCheck, error) {
	var s StatusCheck

	id, ok := doc["id"].(string)
	if !ok {
		return s, errors.New("document has no string id")
	}
	name, ok := doc["client_name"].(string)
	if !ok {
		return s, fmt.Errorf("document %s has no string client_name", id)
	}

	ts, err := decodeTimestamp(doc["timestamp"])
	if err != nil {
		return s, fmt.Errorf("document %s: %w", id, err)
	}

	s.ID = id
	s.ClientName = name
	s.Timestamp = ts
	return s, nil
}

// timeValuer is satisfied by driver types that carry a structured time,
// e.g. the mongo driver's primitive.DateTime.
type timeValuer interface {
	Time() time.Time
}

func decodeTimestamp(v any) (time.Time, error) {
	switch ts := v.(type) {
	case string:
		return ParseTimestamp(ts)
	case time.Time:
		return ts.UTC(), nil
	case *time.Time:
		if ts == nil {
			return time.Time{}, errors.New("nil timestamp")
		}
		return ts.UTC(), nil
	case timeValuer:
		return ts.Time().UTC(), nil
	case nil:
		return time.Time{}, errors.New("missing timestamp")
	default:
		return time.Time{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}
