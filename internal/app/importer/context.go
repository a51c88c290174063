package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/medcatalog/internal/adapter/asset"
	"github.com/heartmarshall/medcatalog/internal/domain"
)

// productRepo is the product persistence needed by the importer.
type productRepo interface {
	ListReferences(ctx context.Context) ([]string, error)
	Create(ctx context.Context, p *domain.Product) error
}

// catalogRepo provides the lookup tables.
type catalogRepo interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListPartners(ctx context.Context) ([]domain.Partner, error)
}

// txManager runs fn inside a database transaction.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// assetFetcher downloads or reuses media files.
type assetFetcher interface {
	GetOrDownload(ctx context.Context, rawURL, filename string, kind asset.Kind) asset.DownloadResult
	Stats() asset.Stats
}

// RowError records a record that could not be imported.
type RowError struct {
	Row       int    `json:"row"`
	Reference string `json:"reference"`
	Error     string `json:"error"`
}

// Stats counts import outcomes.
type Stats struct {
	TotalRows       int        `json:"totalRows"`
	Imported        int        `json:"imported"`
	Skipped         int        `json:"skipped"`
	AssetsSkipped   int        `json:"assetsSkipped"`
	Errors          []RowError `json:"errors"`
	FilesDownloaded int        `json:"filesDownloaded"`
	FilesReused     int        `json:"filesReused"`
}

// RunContext carries all state of one import invocation. Create one per
// run and discard it afterwards.
type RunContext struct {
	cfg Config
	log *slog.Logger

	products productRepo
	tx       txManager
	assets   assetFetcher

	existing   map[string]bool
	categories *CategoryResolver
	partners   *PartnerResolver

	stats Stats
}

// NewRunContext loads existing references, categories and partners.
func NewRunContext(
	ctx context.Context,
	logger *slog.Logger,
	cfg Config,
	products productRepo,
	catalog catalogRepo,
	tx txManager,
	assets assetFetcher,
) (*RunContext, error) {
	refs, err := products.ListReferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("load existing references: %w", err)
	}
	categories, err := catalog.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	partners, err := catalog.ListPartners(ctx)
	if err != nil {
		return nil, fmt.Errorf("load partners: %w", err)
	}

	existing := make(map[string]bool, len(refs))
	for _, r := range refs {
		existing[r] = true
	}

	logger.Info("import context loaded",
		slog.Int("existing_products", len(existing)),
		slog.Int("categories", len(categories)),
		slog.Int("partners", len(partners)),
	)

	return &RunContext{
		cfg:        cfg,
		log:        logger,
		products:   products,
		tx:         tx,
		assets:     assets,
		existing:   existing,
		categories: NewCategoryResolver(categories),
		partners:   NewPartnerResolver(partners),
		stats:      Stats{Errors: []RowError{}},
	}, nil
}

// Stats returns the counters collected so far.
func (rc *RunContext) Stats() Stats {
	s := rc.stats
	if rc.assets != nil {
		as := rc.assets.Stats()
		s.FilesDownloaded = as.Downloaded
		s.FilesReused = as.Reused
	}
	return s
}

func (rc *RunContext) recordError(line int, ref string, err error) {
	rc.stats.Errors = append(rc.stats.Errors, RowError{Row: line, Reference: ref, Error: err.Error()})
	rc.log.Error("import row failed",
		slog.Int("row", line),
		slog.String("ref", ref),
		slog.String("error", err.Error()),
	)
}
