package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"unset", "", 7},
		{"valid", "42", 42},
		{"padded", " 12 ", 12},
		{"invalid", "twelve", 7},
		{"partial number", "12abc", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("TEST_INT", 7))
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.25")
	assert.InDelta(t, 0.25, GetEnvFloat("TEST_FLOAT", 1), 1e-9)

	t.Setenv("TEST_FLOAT", "fast")
	assert.InDelta(t, 1.0, GetEnvFloat("TEST_FLOAT", 1), 1e-9)
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"false", false},
		{"0", false},
		{"TRUE", true},
		{"yes", true}, // invalid → default
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			assert.Equal(t, tt.want, GetEnvBool("TEST_BOOL", true))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "1m30s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "soon")
	assert.Equal(t, time.Second, GetEnvDuration("TEST_DURATION", time.Second))
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("TEST_LIST", " a, ,b ,c")
	assert.Equal(t, []string{"a", "b", "c"}, GetEnvStringList("TEST_LIST", nil))

	t.Setenv("TEST_LIST", " , ")
	assert.Equal(t, []string{"x"}, GetEnvStringList("TEST_LIST", []string{"x"}))
}

func TestLoadRateLimit(t *testing.T) {
	def := RateLimit{Enabled: true, Rate: 0.5, Burst: 5}

	t.Run("defaults", func(t *testing.T) {
		assert.Equal(t, def, LoadRateLimit("TEST_RATE", def))
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("TEST_RATE_LIMIT", "2")
		t.Setenv("TEST_RATE_BURST", "10")
		t.Setenv("TEST_RATE_ENABLED", "false")
		got := LoadRateLimit("TEST_RATE", def)
		assert.Equal(t, RateLimit{Enabled: false, Rate: 2, Burst: 10}, got)
	})

	t.Run("non-positive values fall back", func(t *testing.T) {
		t.Setenv("TEST_RATE_LIMIT", "-1")
		t.Setenv("TEST_RATE_BURST", "0")
		got := LoadRateLimit("TEST_RATE", def)
		assert.Equal(t, def, got)
	})
}

func TestValidateDurationRange(t *testing.T) {
	require.NoError(t, ValidateDurationRange(5*time.Second, time.Second, time.Minute))
	assert.Error(t, ValidateDurationRange(0, time.Second, time.Minute))
	assert.Error(t, ValidateDurationRange(2*time.Minute, time.Second, time.Minute))
	assert.Error(t, ValidateDurationRange(time.Second, time.Minute, time.Second))
}
