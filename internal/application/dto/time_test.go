package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bau-portal/internal/application/dto"
)

func TestTimestamp_SinZona_HoraLocal(t *testing.T) {
	var ts dto.Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-01T08:30:00"`), &ts))

	assert.Equal(t, time.Local, ts.Location())
	assert.True(t, ts.Equal(time.Date(2025, 3, 1, 8, 30, 0, 0, time.Local)))
}

func TestTimestamp_SinZona_ConFraccion(t *testing.T) {
	var ts dto.Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-01T08:30:00.123456"`), &ts))

	assert.True(t, ts.Equal(time.Date(2025, 3, 1, 8, 30, 0, 123456000, time.Local)))
}

func TestTimestamp_RFC3339_RespetaLaZona(t *testing.T) {
	var ts dto.Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-01T08:30:00+01:00"`), &ts))

	assert.True(t, ts.Equal(time.Date(2025, 3, 1, 7, 30, 0, 0, time.UTC)))
}

func TestTimestamp_NullYVacio_Cero(t *testing.T) {
	for _, raw := range []string{`null`, `""`} {
		var ts dto.Timestamp
		require.NoError(t, json.Unmarshal([]byte(raw), &ts))
		assert.True(t, ts.IsZero(), raw)
	}
}

func TestTimestamp_Invalido_Error(t *testing.T) {
	var ts dto.Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"gestern"`), &ts))
}
