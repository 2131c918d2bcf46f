package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/engine"
	"github.com/jacksonbarkworth-cmyk/playerHUDapp/internal/storage"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PLAYERHUD_CONFIG", path)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SUPABASE_URL", "SUPABASE_SERVICE_ROLE_KEY", "PLAYERHUD_SAVE_KEY", "PLAYERHUD_DB", "PLAYERHUD_NO_STORE"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaultsWhenNothingConfigured(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLAYERHUD_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SaveKey != storage.DefaultSaveKey {
		t.Fatalf("save key=%q, want %q", cfg.SaveKey, storage.DefaultSaveKey)
	}
	if cfg.CloudEnabled() {
		t.Fatalf("cloud enabled with no credentials")
	}
	if cfg.NoStore {
		t.Fatalf("no_store set by default")
	}
}

func TestLoadMergesFile(t *testing.T) {
	clearEnv(t)
	writeConfig(t, `
save_key: alt_user
db_path: /tmp/hud-test.db
supabase:
  url: https://example.supabase.co
  service_role_key: file-key
rates:
  Reading:
    per_hour: 2.5
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SaveKey != "alt_user" {
		t.Fatalf("save key=%q", cfg.SaveKey)
	}
	if cfg.DBPath != "/tmp/hud-test.db" {
		t.Fatalf("db path=%q", cfg.DBPath)
	}
	if !cfg.CloudEnabled() {
		t.Fatalf("cloud should be enabled")
	}
	// File overlays one rate and leaves the rest of the table intact.
	if cfg.Rate("Reading").PerHour != 2.5 {
		t.Fatalf("Reading per_hour=%v, want 2.5", cfg.Rate("Reading").PerHour)
	}
	if cfg.Rate("Gym Workout").PerHour == 0 && cfg.Rate("Gym Workout").Flat == 0 {
		t.Fatalf("default rates lost in merge")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	writeConfig(t, `
save_key: from_file
supabase:
  url: https://file.supabase.co
  service_role_key: file-key
`)
	t.Setenv("PLAYERHUD_SAVE_KEY", "from_env")
	t.Setenv("SUPABASE_URL", "https://env.supabase.co")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SaveKey != "from_env" {
		t.Fatalf("save key=%q, want env value", cfg.SaveKey)
	}
	if cfg.Supabase.URL != "https://env.supabase.co" {
		t.Fatalf("url=%q, want env value", cfg.Supabase.URL)
	}
	// Untouched fields keep the file value.
	if cfg.Supabase.ServiceRoleKey != "file-key" {
		t.Fatalf("key=%q, want file value", cfg.Supabase.ServiceRoleKey)
	}
}

func TestNoStoreEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLAYERHUD_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PLAYERHUD_NO_STORE", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.NoStore {
		t.Fatalf("no_store not applied from env")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	clearEnv(t)
	writeConfig(t, "save_key: [unclosed")

	if _, err := Load(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRateResolve(t *testing.T) {
	hourly := Rate{PerHour: 0.5}
	if got := hourly.Resolve(2); got != 1.0 {
		t.Fatalf("hourly resolve=%v, want 1.0", got)
	}
	if got := hourly.Resolve(0); got != 0.5 {
		t.Fatalf("hourly without hours=%v, want the per-hour unit", got)
	}

	flat := Rate{Flat: 2.0}
	if got := flat.Resolve(0); got != 2.0 {
		t.Fatalf("flat resolve=%v, want 2.0", got)
	}
	// Flat rates ignore hours.
	if got := flat.Resolve(3); got != 2.0 {
		t.Fatalf("flat with hours=%v, want 2.0", got)
	}

	var zero Rate
	if got := zero.Resolve(1); got != 0 {
		t.Fatalf("zero rate=%v, want 0", got)
	}
}

func TestDefaultRatesCoverAllXPCategories(t *testing.T) {
	rates := DefaultRates()
	for _, cat := range engine.XPCategories {
		r, ok := rates[cat]
		if !ok {
			t.Fatalf("no default rate for %q", cat)
		}
		if r.Resolve(1) <= 0 {
			t.Fatalf("rate for %q resolves to nothing", cat)
		}
	}
}
