package config

import (
	"time"
)

// Config is the root configuration shared by all catalog commands.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Quality   QualityConfig   `yaml:"quality"`
	Import    ImportConfig    `yaml:"import"`
	Assets    AssetsConfig    `yaml:"assets"`
	Translate TranslateConfig `yaml:"translate"`
}

// DatabaseConfig holds PostgreSQL connection settings. The DSN is only
// required by commands that open the database; see DatabaseConfig.Validate.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"5"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// QualityConfig holds the sheet quality-report settings. The two heuristic
// thresholds were tuned on the ophthalmic instrument catalog and should be
// re-validated before reuse on other corpora.
type QualityConfig struct {
	MismatchMinCount        int     `yaml:"mismatch_min_count"        env:"QUALITY_MISMATCH_MIN_COUNT"        env-default:"2"`
	NearDuplicateSimilarity float64 `yaml:"near_duplicate_similarity" env:"QUALITY_NEAR_DUPLICATE_SIMILARITY" env-default:"0.8"`
	DisplayLimit            int     `yaml:"display_limit"             env:"QUALITY_DISPLAY_LIMIT"             env-default:"10"`
	ReportDir               string  `yaml:"report_dir"                env:"QUALITY_REPORT_DIR"                env-default:"."`

	// SampleSize limits scoring to the first N rows; 0 scores every row.
	SampleSize *int `yaml:"sample_size"`
}

// ImportConfig holds catalog import settings.
type ImportConfig struct {
	ReportDir         string `yaml:"report_dir"          env:"IMPORT_REPORT_DIR"          env-default:"."`
	ErrorDisplayLimit int    `yaml:"error_display_limit" env:"IMPORT_ERROR_DISPLAY_LIMIT" env-default:"10"`
	DryRun            bool   `yaml:"dry_run"             env:"IMPORT_DRY_RUN"             env-default:"false"`
	Delimiter         string `yaml:"delimiter"           env:"IMPORT_DELIMITER"           env-default:","`
}

// AssetsConfig holds media download and reuse settings.
type AssetsConfig struct {
	PublicDir         string        `yaml:"public_dir"          env:"ASSETS_PUBLIC_DIR"          env-default:"./public"`
	ImageDir          string        `yaml:"image_dir"           env:"ASSETS_IMAGE_DIR"           env-default:"./public/uploads/products"`
	DocumentDir       string        `yaml:"document_dir"        env:"ASSETS_DOCUMENT_DIR"        env-default:"./public/uploads/pdfs"`
	ScanDirs          []string      `yaml:"scan_dirs"           env:"ASSETS_SCAN_DIRS"           env-default:"./public/uploads,./public/images,./public/pdfs,./public/products" env-separator:","`
	Timeout           time.Duration `yaml:"timeout"             env:"ASSETS_TIMEOUT"             env-default:"30s"`
	RequestsPerSecond float64       `yaml:"requests_per_second" env:"ASSETS_REQUESTS_PER_SECOND" env-default:"5"`
	Burst             int           `yaml:"burst"               env:"ASSETS_BURST"               env-default:"1"`
	UserAgent         string        `yaml:"user_agent"          env:"ASSETS_USER_AGENT"          env-default:"medcatalog-importer/1.0"`

	// MaxImages and MaxDocuments cap the URLs taken per product; 0 takes none.
	MaxImages    *int `yaml:"max_images"`
	MaxDocuments *int `yaml:"max_documents"`
}

// TranslateConfig selects and tunes the French translation backend.
type TranslateConfig struct {
	Backend         string `yaml:"backend"          env:"TRANSLATE_BACKEND"          env-default:"heuristic"`
	LLMAPIKey       string `yaml:"llm_api_key"      env:"TRANSLATE_LLM_API_KEY"`
	LLMModel        string `yaml:"llm_model"        env:"TRANSLATE_LLM_MODEL"        env-default:"claude-sonnet-4-5"`
	LLMMaxTokens    int64  `yaml:"llm_max_tokens"   env:"TRANSLATE_LLM_MAX_TOKENS"   env-default:"1024"`
	RegenerateBelow int    `yaml:"regenerate_below" env:"TRANSLATE_REGENERATE_BELOW" env-default:"90"`
}

const (
	TranslateBackendHeuristic = "heuristic"
	TranslateBackendLLM       = "llm"
)

// DelimiterRune returns the configured field delimiter.
func (c ImportConfig) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ','
}

// Defaults for the counts that accept an explicit zero. cleanenv replaces a
// zero value with its env-default, so these are pointers filled by Load.
const (
	DefaultSampleSize   = 50
	DefaultMaxImages    = 3
	DefaultMaxDocuments = 2
)

// Sample returns the scoring sample size (0 = all rows).
func (q QualityConfig) Sample() int { return intOr(q.SampleSize, DefaultSampleSize) }

// ImageLimit returns the per-product image cap.
func (a AssetsConfig) ImageLimit() int { return intOr(a.MaxImages, DefaultMaxImages) }

// DocumentLimit returns the per-product document cap.
func (a AssetsConfig) DocumentLimit() int { return intOr(a.MaxDocuments, DefaultMaxDocuments) }

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
