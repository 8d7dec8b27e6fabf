package repository

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// SQLite hands back aggregate timestamps (MAX over a datetime column) as
// plain text, Postgres as time.Time.
var aggregateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// aggregateTime has the same shape as sql.NullTime; gorm needs both Scan
// and Value before it treats the field as a column instead of a relation.
type aggregateTime struct {
	Time  time.Time
	Valid bool
}

func (t aggregateTime) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}
	return t.Time, nil
}

func (t *aggregateTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v.UTC(), true
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	}
	return fmt.Errorf("unsupported aggregate time type %T", src)
}

func (t *aggregateTime) parse(value string) error {
	for _, layout := range aggregateTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			t.Time, t.Valid = parsed.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("unrecognised aggregate time %q", value)
}
