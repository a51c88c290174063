package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
database:
  dsn: "postgres://u:p@localhost:5432/catalog"
  max_conns: 8
  min_conns: 2

log:
  level: "debug"
  format: "json"

quality:
  sample_size: 0
  mismatch_min_count: 3
  near_duplicate_similarity: 0.9
  display_limit: 5
  report_dir: "./reports"

import:
  report_dir: "./reports"
  error_display_limit: 20
  dry_run: true
  delimiter: ";"

assets:
  public_dir: "/srv/public"
  image_dir: "/srv/public/uploads/products"
  document_dir: "/srv/public/uploads/pdfs"
  scan_dirs: ["/srv/public/uploads", "/srv/public/images"]
  timeout: "10s"
  requests_per_second: 2
  burst: 2
  max_images: 1
  max_documents: 0

translate:
  backend: "heuristic"
  regenerate_below: 80
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/catalog" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 8 {
		t.Errorf("database.max_conns = %d, want 8", cfg.Database.MaxConns)
	}

	// Quality
	if got := cfg.Quality.Sample(); got != 0 {
		t.Errorf("quality.sample_size = %d, want 0", got)
	}
	if cfg.Quality.MismatchMinCount != 3 {
		t.Errorf("quality.mismatch_min_count = %d, want 3", cfg.Quality.MismatchMinCount)
	}
	if cfg.Quality.NearDuplicateSimilarity != 0.9 {
		t.Errorf("quality.near_duplicate_similarity = %v, want 0.9", cfg.Quality.NearDuplicateSimilarity)
	}

	// Import
	if !cfg.Import.DryRun {
		t.Error("import.dry_run should be true")
	}
	if cfg.Import.DelimiterRune() != ';' {
		t.Errorf("import.delimiter = %q, want ';'", cfg.Import.DelimiterRune())
	}

	// Assets
	if len(cfg.Assets.ScanDirs) != 2 {
		t.Fatalf("assets.scan_dirs len = %d, want 2", len(cfg.Assets.ScanDirs))
	}
	if cfg.Assets.Timeout != 10*time.Second {
		t.Errorf("assets.timeout = %v, want 10s", cfg.Assets.Timeout)
	}
	if got := cfg.Assets.ImageLimit(); got != 1 {
		t.Errorf("assets.max_images = %d, want 1", got)
	}
	if got := cfg.Assets.DocumentLimit(); got != 0 {
		t.Errorf("assets.max_documents = %d, want 0", got)
	}

	// Translate
	if cfg.Translate.RegenerateBelow != 80 {
		t.Errorf("translate.regenerate_below = %d, want 80", cfg.Translate.RegenerateBelow)
	}

	// Log
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("QUALITY_SAMPLE_SIZE", "200")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cfg.Quality.Sample(); got != 200 {
		t.Errorf("quality.sample_size = %d, want 200 (ENV override)", got)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cfg.Quality.Sample(); got != 50 {
		t.Errorf("quality.sample_size = %d, want 50 (default)", got)
	}
	if cfg.Assets.ImageLimit() != 3 || cfg.Assets.DocumentLimit() != 2 {
		t.Errorf("assets limits = %d/%d, want 3/2 (default)", cfg.Assets.ImageLimit(), cfg.Assets.DocumentLimit())
	}
	if cfg.Quality.NearDuplicateSimilarity != 0.8 {
		t.Errorf("quality.near_duplicate_similarity = %v, want 0.8 (default)", cfg.Quality.NearDuplicateSimilarity)
	}
	if len(cfg.Assets.ScanDirs) != 4 {
		t.Errorf("assets.scan_dirs = %v, want 4 defaults", cfg.Assets.ScanDirs)
	}
	if cfg.Translate.Backend != TranslateBackendHeuristic {
		t.Errorf("translate.backend = %q, want heuristic", cfg.Translate.Backend)
	}
	if cfg.Database.DSN != "" {
		t.Errorf("database.dsn = %q, want empty", cfg.Database.DSN)
	}
}

func TestLoad_ExplicitZeroCounts(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `
quality:
  sample_size: 0
assets:
  max_images: 0
  max_documents: 0
`)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cfg.Quality.Sample(); got != 0 {
		t.Errorf("quality.sample_size = %d, want 0", got)
	}
	if got := cfg.Assets.ImageLimit(); got != 0 {
		t.Errorf("assets.max_images = %d, want 0", got)
	}
	if got := cfg.Assets.DocumentLimit(); got != 0 {
		t.Errorf("assets.max_documents = %d, want 0", got)
	}
}

func TestLoad_ENVZeroCount(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("ASSETS_MAX_IMAGES", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.Assets.ImageLimit(); got != 0 {
		t.Errorf("assets.max_images = %d, want 0 (ENV override)", got)
	}
}

func TestLoad_ENVCountNotANumber(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("QUALITY_SAMPLE_SIZE", "all")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric QUALITY_SAMPLE_SIZE")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func intPtr(n int) *int { return &n }

func validConfig() Config {
	return Config{
		Quality: QualityConfig{
			SampleSize:              intPtr(50),
			MismatchMinCount:        2,
			NearDuplicateSimilarity: 0.8,
			DisplayLimit:            10,
		},
		Import: ImportConfig{
			ErrorDisplayLimit: 10,
			Delimiter:         ",",
		},
		Assets: AssetsConfig{
			ImageDir:          "./public/uploads/products",
			DocumentDir:       "./public/uploads/pdfs",
			RequestsPerSecond: 5,
			Burst:             1,
			MaxImages:         intPtr(3),
			MaxDocuments:      intPtr(2),
		},
		Translate: TranslateConfig{
			Backend:         TranslateBackendHeuristic,
			LLMMaxTokens:    1024,
			RegenerateBelow: 90,
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative sample size", func(c *Config) { c.Quality.SampleSize = intPtr(-1) }},
		{"negative max images", func(c *Config) { c.Assets.MaxImages = intPtr(-1) }},
		{"zero mismatch count", func(c *Config) { c.Quality.MismatchMinCount = 0 }},
		{"similarity zero", func(c *Config) { c.Quality.NearDuplicateSimilarity = 0 }},
		{"similarity above one", func(c *Config) { c.Quality.NearDuplicateSimilarity = 1.1 }},
		{"display limit zero", func(c *Config) { c.Quality.DisplayLimit = 0 }},
		{"multi-char delimiter", func(c *Config) { c.Import.Delimiter = ";;" }},
		{"quote delimiter", func(c *Config) { c.Import.Delimiter = `"` }},
		{"empty delimiter", func(c *Config) { c.Import.Delimiter = "" }},
		{"zero rate", func(c *Config) { c.Assets.RequestsPerSecond = 0 }},
		{"zero burst", func(c *Config) { c.Assets.Burst = 0 }},
		{"missing image dir", func(c *Config) { c.Assets.ImageDir = "" }},
		{"unknown backend", func(c *Config) { c.Translate.Backend = "deepl" }},
		{"llm without key", func(c *Config) { c.Translate.Backend = TranslateBackendLLM }},
		{"regenerate above 100", func(c *Config) { c.Translate.RegenerateBelow = 101 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidate_LLMWithKey(t *testing.T) {
	cfg := validConfig()
	cfg.Translate.Backend = TranslateBackendLLM
	cfg.Translate.LLMAPIKey = "sk-test"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDatabaseConfig_Validate(t *testing.T) {
	ok := DatabaseConfig{DSN: "postgres://localhost/db", MaxConns: 5, MinConns: 1}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := ok
	missing.DSN = ""
	if err := missing.Validate(); err == nil {
		t.Fatal("expected error for missing DSN")
	}

	inverted := ok
	inverted.MinConns = 10
	if err := inverted.Validate(); err == nil {
		t.Fatal("expected error for min_conns > max_conns")
	}
}
