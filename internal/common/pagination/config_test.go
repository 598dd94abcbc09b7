package pagination_test

import (
	"testing"

	"newspress/internal/common/pagination"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := pagination.DefaultConfig()
	if config.DefaultPage != 1 || config.DefaultLimit != 12 || config.MaxLimit != 100 {
		t.Errorf("DefaultConfig() = %+v", config)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("with all env vars set", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE", "2")
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "30")
		t.Setenv("PAGINATION_MAX_LIMIT", "200")

		config := pagination.LoadFromEnv()
		want := pagination.Config{DefaultPage: 2, DefaultLimit: 30, MaxLimit: 200}
		if config != want {
			t.Errorf("LoadFromEnv() = %+v, want %+v", config, want)
		}
	})

	t.Run("with no env vars (fallback to defaults)", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE", "")
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "")
		t.Setenv("PAGINATION_MAX_LIMIT", "")

		if config := pagination.LoadFromEnv(); config != pagination.DefaultConfig() {
			t.Errorf("LoadFromEnv() = %+v, want defaults", config)
		}
	})

	t.Run("default limit above max is reset", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE", "")
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "50")
		t.Setenv("PAGINATION_MAX_LIMIT", "10")

		config := pagination.LoadFromEnv()
		if config.DefaultLimit != 10 || config.MaxLimit != 10 {
			t.Errorf("LoadFromEnv() = %+v, want limit 10 max 10", config)
		}
	})

	t.Run("invalid values fall back", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_PAGE", "zero")
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "-4")
		t.Setenv("PAGINATION_MAX_LIMIT", "")

		if config := pagination.LoadFromEnv(); config != pagination.DefaultConfig() {
			t.Errorf("LoadFromEnv() = %+v, want defaults", config)
		}
	})
}
