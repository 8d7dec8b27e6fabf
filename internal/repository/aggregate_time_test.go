package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestAggregateTimeScan(t *testing.T) {
	want := time.Date(2024, 3, 15, 9, 30, 0, 123456000, time.UTC)

	tests := []struct {
		name string
		src  interface{}
		want time.Time
	}{
		{name: "time value", src: want.In(time.FixedZone("CST", 8*3600)), want: want},
		{name: "sqlite text", src: "2024-03-15 09:30:00.123456+00:00", want: want},
		{name: "sqlite bytes", src: []byte("2024-03-15 17:30:00.123456+08:00"), want: want},
		{name: "rfc3339", src: "2024-03-15T09:30:00.123456Z", want: want},
		{name: "no zone", src: "2024-03-15 09:30:00.123456", want: want},
		{name: "whole seconds", src: "2024-03-15 09:30:00", want: want.Truncate(time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got aggregateTime
			require.NoError(t, got.Scan(tt.src))
			assert.True(t, got.Valid)
			assert.True(t, tt.want.Equal(got.Time), "got %s", got.Time)
		})
	}
}

func TestAggregateTimeScanNull(t *testing.T) {
	got := aggregateTime{Valid: true}
	require.NoError(t, got.Scan(nil))
	assert.False(t, got.Valid)
}

func TestAggregateTimeScanRejectsGarbage(t *testing.T) {
	var got aggregateTime
	assert.Error(t, got.Scan("yesterday"))
	assert.Error(t, got.Scan(42))
}

func TestAggregateTimeValue(t *testing.T) {
	v, err := aggregateTime{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	at := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	v, err = aggregateTime{Time: at, Valid: true}.Value()
	require.NoError(t, err)
	assert.Equal(t, at, v)
}

func TestLocationStatusRowIsPlainColumns(t *testing.T) {
	s, err := schema.Parse(&locationStatusRow{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	field := s.LookUpField("latest_report_date")
	require.NotNil(t, field)
	assert.NotEmpty(t, field.DataType)
	assert.Empty(t, s.Relationships.Relations)
}
