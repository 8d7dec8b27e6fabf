package helper

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatReportCode renders the human-facing identifier CR-<year>-<id>, with the
// id zero-padded to four digits.
func FormatReportCode(prefix string, createdAt time.Time, id int64) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, createdAt.Year(), id)
}

func ParseReportID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, NewInvalidIDError()
	}
	return id, nil
}

// FormatTimestamp renders t as an ISO-8601 UTC timestamp with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
