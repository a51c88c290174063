package repair

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/medcatalog/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// translatorFunc adapts a function to translate.Translator.
type translatorFunc func(ctx context.Context, english string) (string, error)

func (f translatorFunc) ToFrench(ctx context.Context, english string) (string, error) {
	return f(ctx, english)
}

func prefixTranslator() translatorFunc {
	return func(_ context.Context, english string) (string, error) {
		return "FR:" + english, nil
	}
}

func failingTranslator() translatorFunc {
	return func(context.Context, string) (string, error) {
		return "", errors.New("backend unavailable")
	}
}

type update struct {
	ProductID uuid.UUID
	Lang      domain.Language
	Text      domain.LocalizedText
}

// mockTextStore serves a fixed product list and records updates.
type mockTextStore struct {
	mu        sync.Mutex
	products  []domain.ProductTexts
	listErr   error
	updateErr func(lang domain.Language) error
	updates   []update
}

func (m *mockTextStore) ListTexts(ctx context.Context) ([]domain.ProductTexts, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.products, nil
}

func (m *mockTextStore) UpdateTranslation(ctx context.Context, productID uuid.UUID, lang domain.Language, text domain.LocalizedText) error {
	if m.updateErr != nil {
		if err := m.updateErr(lang); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, update{ProductID: productID, Lang: lang, Text: text})
	return nil
}

func (m *mockTextStore) Updates() []update {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updates
}

type mockTxManager struct {
	mu    sync.Mutex
	calls int
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return fn(ctx)
}
