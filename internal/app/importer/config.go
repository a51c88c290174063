package importer

import "github.com/heartmarshall/medcatalog/internal/config"

// Config holds import pipeline settings.
type Config struct {
	DryRun            bool
	Delimiter         rune
	MaxImages         int // 0 takes no images
	MaxDocuments      int // 0 takes no documents
	ErrorDisplayLimit int
	ReportDir         string
}

// ConfigFrom builds the pipeline settings from the shared configuration.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		DryRun:            cfg.Import.DryRun,
		Delimiter:         cfg.Import.DelimiterRune(),
		MaxImages:         cfg.Assets.ImageLimit(),
		MaxDocuments:      cfg.Assets.DocumentLimit(),
		ErrorDisplayLimit: cfg.Import.ErrorDisplayLimit,
		ReportDir:         cfg.Import.ReportDir,
	}
}
