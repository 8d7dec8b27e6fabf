package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReportCode(t *testing.T) {
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "CR-2024-0007", FormatReportCode("CR", created, 7))
	assert.Equal(t, "CR-2024-0123", FormatReportCode("CR", created, 123))
	assert.Equal(t, "CR-2024-12345", FormatReportCode("CR", created, 12345))
	assert.Equal(t, "CR-2025-0001", FormatReportCode("CR", created.AddDate(1, 0, 0), 1))
}

func TestParseReportID(t *testing.T) {
	id, err := ParseReportID("42")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	for _, raw := range []string{"-1", "0", "abc", "", "1.5", "99999999999999999999"} {
		_, err := ParseReportID(raw)
		assert.True(t, IsKind(err, KindInvalidID), "input %q", raw)
		assert.False(t, IsKind(err, KindNotFound), "input %q", raw)
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 15, 17, 30, 0, 123456789, time.FixedZone("CST", 8*3600))
	assert.Equal(t, "2024-03-15T09:30:00.123Z", FormatTimestamp(ts))
}
