package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoad_Defaults verifies defaults when no env or .env is present.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())
	for _, key := range []string{"TOPOGEN_SEED", "TOPOGEN_PROFILE", "TOPOGEN_FORMAT", "TOPOGEN_BATCH", "TOPOGEN_LISTEN_ADDR", "LOG_LEVEL", "LOG_JSON"} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SeedSet || cfg.Batch != 1 || cfg.Format != FormatYAML || cfg.ListenAddr != defaultListenAddr || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

// TestLoad_EnvFile verifies .env values apply without overriding the environment.
func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "# topogen\nexport TOPOGEN_SEED=0x2a\nTOPOGEN_FORMAT=\"json\"\nTOPOGEN_BATCH=3\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("DATA_DIR", dir)
	t.Setenv("TOPOGEN_BATCH", "5")
	for _, key := range []string{"TOPOGEN_SEED", "TOPOGEN_FORMAT"} {
		unsetForTest(t, key)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.SeedSet || cfg.Seed != 42 || cfg.Format != FormatJSON || cfg.Batch != 5 {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

// TestLoad_Invalid verifies bad values are rejected.
func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"TOPOGEN_SEED":   "-1",
		"TOPOGEN_FORMAT": "xml",
		"TOPOGEN_BATCH":  "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("DATA_DIR", t.TempDir())
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

// TestParseEnvLine verifies comments, export prefixes and quotes.
func TestParseEnvLine(t *testing.T) {
	if _, _, ok := parseEnvLine("# comment"); ok {
		t.Fatalf("expected comment to be skipped")
	}
	key, value, ok := parseEnvLine(`export LOG_LEVEL='debug'`)
	if !ok || key != "LOG_LEVEL" || value != "debug" {
		t.Fatalf("unexpected parse %q=%q ok=%v", key, value, ok)
	}
}

// unsetForTest removes key for the duration of the test.
func unsetForTest(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}
