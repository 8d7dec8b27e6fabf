package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotosRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		photos Photos
	}{
		{name: "order kept", photos: Photos{"https://cdn.example.com/b.jpg", "https://cdn.example.com/a.jpg"}},
		{name: "duplicates kept", photos: Photos{"url1", "url1", "url2"}},
		{name: "awkward characters", photos: Photos{`https://x/with,comma.jpg`, `https://x/"quoted".png`, " padded "}},
		{name: "single", photos: Photos{"https://cdn.example.com/only.heic"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := tt.photos.Value()
			require.NoError(t, err)

			var decoded Photos
			require.NoError(t, decoded.Scan(value))
			assert.Equal(t, tt.photos, decoded)

			var fromBytes Photos
			require.NoError(t, fromBytes.Scan([]byte(value.(string))))
			assert.Equal(t, tt.photos, fromBytes)
		})
	}
}

func TestPhotosNilEncodesEmptyArray(t *testing.T) {
	value, err := Photos(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", value)
}
