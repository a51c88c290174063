package repair

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/medcatalog/internal/domain"
	"github.com/heartmarshall/medcatalog/internal/quality"
	"github.com/heartmarshall/medcatalog/internal/translate"
)

// TextStore reads and writes persisted product translations.
type TextStore interface {
	ListTexts(ctx context.Context) ([]domain.ProductTexts, error)
	UpdateTranslation(ctx context.Context, productID uuid.UUID, lang domain.Language, text domain.LocalizedText) error
}

// TxManager runs fn inside a database transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Result holds database pass statistics.
type Result struct {
	Total     int
	Updated   int
	Unchanged int
	Errors    int
}

// FixDatabase applies the sheet repair rule to every persisted product and
// updates the French translation. With dryRun nothing is written.
func FixDatabase(ctx context.Context, store TextStore, tr translate.Translator, dryRun bool, log *slog.Logger) (Result, error) {
	products, err := store.ListTexts(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list product texts: %w", err)
	}

	var result Result
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Total++

		fr, changed, err := repairFrench(ctx, tr, p)
		if err != nil {
			log.Warn("translation failed", slog.String("reference", p.Reference), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		if !changed {
			result.Unchanged++
			continue
		}

		if dryRun {
			log.Info("dry run: would update", slog.String("reference", p.Reference), slog.String("name_fr", fr.Name))
			result.Updated++
			continue
		}

		if err := store.UpdateTranslation(ctx, p.ProductID, domain.LanguageFR, fr); err != nil {
			log.Error("update translation", slog.String("reference", p.Reference), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Updated++
		log.Debug("translation updated", slog.String("reference", p.Reference))
	}

	log.Info("database translations fixed",
		slog.Int("total", result.Total),
		slog.Int("updated", result.Updated),
		slog.Int("errors", result.Errors),
		slog.Bool("dry_run", dryRun),
	)
	return result, nil
}

func repairFrench(ctx context.Context, tr translate.Translator, p domain.ProductTexts) (domain.LocalizedText, bool, error) {
	fr := p.FR
	if !translate.NeedsImprovement(fr.Name, p.EN.Name) {
		return fr, false, nil
	}

	changed := false
	source := p.EN.Name
	if strings.TrimSpace(source) == "" {
		source = p.FR.Name
	}
	if strings.TrimSpace(source) != "" {
		name, err := tr.ToFrench(ctx, source)
		if err != nil {
			return fr, false, err
		}
		if name != "" && name != fr.Name {
			fr.Name = name
			changed = true
		}
	}

	if strings.TrimSpace(p.EN.Description) != "" && translate.NeedsImprovement(fr.Description, p.EN.Description) {
		desc, err := tr.ToFrench(ctx, p.EN.Description)
		if err != nil {
			return fr, false, err
		}
		if desc != "" && desc != fr.Description {
			fr.Description = desc
			changed = true
		}
	}
	return fr, changed, nil
}

// Regenerate rebuilds names and descriptions in both languages from
// templates for every product whose content score is below threshold.
// Both languages are written in one transaction.
func Regenerate(ctx context.Context, store TextStore, tx TxManager, gen *translate.Generator, threshold int, dryRun bool, log *slog.Logger) (Result, error) {
	products, err := store.ListTexts(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list product texts: %w", err)
	}

	var result Result
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Total++

		score := translate.ContentScore(p.FR, p.EN)
		if score >= threshold {
			result.Unchanged++
			continue
		}

		fr, en := gen.Generate(p)
		if dryRun {
			log.Info("dry run: would regenerate",
				slog.String("reference", p.Reference),
				slog.Int("score", score),
				slog.String("name_fr", fr.Name),
				slog.String("name_en", en.Name),
			)
			result.Updated++
			continue
		}

		err := tx.RunInTx(ctx, func(txCtx context.Context) error {
			if err := store.UpdateTranslation(txCtx, p.ProductID, domain.LanguageFR, fr); err != nil {
				return fmt.Errorf("update fr: %w", err)
			}
			if err := store.UpdateTranslation(txCtx, p.ProductID, domain.LanguageEN, en); err != nil {
				return fmt.Errorf("update en: %w", err)
			}
			return nil
		})
		if err != nil {
			log.Error("regenerate", slog.String("reference", p.Reference), slog.String("error", err.Error()))
			result.Errors++
			continue
		}
		result.Updated++
		log.Debug("texts regenerated", slog.String("reference", p.Reference), slog.Int("score", score))
	}

	log.Info("texts regenerated",
		slog.Int("total", result.Total),
		slog.Int("regenerated", result.Updated),
		slog.Int("errors", result.Errors),
		slog.Int("threshold", threshold),
		slog.Bool("dry_run", dryRun),
	)
	return result, nil
}

// Inconsistency lists the quality issues of one persisted product.
type Inconsistency struct {
	ProductID uuid.UUID
	Reference string
	Issues    []string
}

// ConsistencyReport is the outcome of CheckConsistency.
type ConsistencyReport struct {
	Checked         int
	Inconsistencies []Inconsistency
}

// CheckConsistency runs the language and translation checks over the
// persisted names and collects the products with at least one issue.
func CheckConsistency(ctx context.Context, store TextStore, checker *quality.Checker) (ConsistencyReport, error) {
	products, err := store.ListTexts(ctx)
	if err != nil {
		return ConsistencyReport{}, fmt.Errorf("list product texts: %w", err)
	}

	report := ConsistencyReport{Checked: len(products)}
	for _, p := range products {
		var issues []string
		for _, is := range checker.CheckLanguage(p.FR.Name, domain.LanguageFR).Issues {
			issues = append(issues, "French Name: "+is)
		}
		for _, is := range checker.CheckLanguage(p.EN.Name, domain.LanguageEN).Issues {
			issues = append(issues, "English Name: "+is)
		}
		for _, is := range checker.CheckTranslation(p.FR.Name, p.EN.Name).Issues {
			issues = append(issues, "Translation: "+is)
		}
		if len(issues) > 0 {
			report.Inconsistencies = append(report.Inconsistencies, Inconsistency{
				ProductID: p.ProductID,
				Reference: p.Reference,
				Issues:    issues,
			})
		}
	}
	return report, nil
}

// WriteConsistency prints at most limit offending products followed by a
// count of the rest.
func WriteConsistency(w io.Writer, r ConsistencyReport, limit int) error {
	found := r.Inconsistencies
	var b strings.Builder
	fmt.Fprintf(&b, "Checked %d products, %d with issues\n", r.Checked, len(found))
	for i, f := range found {
		if limit > 0 && i == limit {
			fmt.Fprintf(&b, "  ... and %d more\n", len(found)-limit)
			break
		}
		fmt.Fprintf(&b, "  - %s: %s\n", f.Reference, strings.Join(f.Issues, "; "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
