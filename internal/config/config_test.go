package config

import (
	"testing"
	"time"
)

func TestNormalizeNotionID(t *testing.T) {
	got := normalizeNotionID(" 1a2b3c4d-5e6f-7a8b-9c0d-1e2f3a4b5c6d ")
	if got != "1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d" {
		t.Errorf("normalizeNotionID = %q", got)
	}
}

func TestNotionEnabled(t *testing.T) {
	cfg := &Config{Notion: NotionConfig{Token: "secret"}}
	if cfg.NotionEnabled() {
		t.Error("mirror should be disabled without a database id")
	}
	cfg.Notion.DatabaseID = "db"
	if !cfg.NotionEnabled() {
		t.Error("mirror should be enabled with token and database id")
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		timezone string
		want     string
	}{
		{"", time.Local.String()},
		{"Local", time.Local.String()},
		{"UTC", "UTC"},
		{"Not/AZone", time.Local.String()},
	}

	for _, tt := range tests {
		cfg := &Config{Reminder: ReminderConfig{Timezone: tt.timezone}}
		if got := cfg.Location().String(); got != tt.want {
			t.Errorf("Location(%q) = %q, want %q", tt.timezone, got, tt.want)
		}
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("OFFER_TEST_INT", "7")
	t.Setenv("OFFER_TEST_BAD_INT", "seven")
	t.Setenv("OFFER_TEST_DURATION", "250ms")
	t.Setenv("OFFER_TEST_BAD_DURATION", "soon")

	if got := getEnvAsInt("OFFER_TEST_INT", 1); got != 7 {
		t.Errorf("getEnvAsInt = %d, want 7", got)
	}
	if got := getEnvAsInt("OFFER_TEST_BAD_INT", 1); got != 1 {
		t.Errorf("getEnvAsInt fallback = %d, want 1", got)
	}
	if got := getEnvAsDuration("OFFER_TEST_DURATION", "5s"); got != 250*time.Millisecond {
		t.Errorf("getEnvAsDuration = %v", got)
	}
	if got := getEnvAsDuration("OFFER_TEST_BAD_DURATION", "5s"); got != 5*time.Second {
		t.Errorf("getEnvAsDuration fallback = %v", got)
	}
	if got := getEnv("OFFER_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("getEnv = %q", got)
	}
}
