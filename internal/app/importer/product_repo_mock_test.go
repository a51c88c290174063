package importer

import (
	"context"
	"sync"

	"github.com/heartmarshall/medcatalog/internal/domain"
)

var _ productRepo = &productRepoMock{}

type productRepoMock struct {
	CreateFunc         func(ctx context.Context, p *domain.Product) error
	ListReferencesFunc func(ctx context.Context) ([]string, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			P   *domain.Product
		}
		ListReferences []struct {
			Ctx context.Context
		}
	}
	lockCreate         sync.RWMutex
	lockListReferences sync.RWMutex
}

func (mock *productRepoMock) Create(ctx context.Context, p *domain.Product) error {
	if mock.CreateFunc == nil {
		panic("productRepoMock.CreateFunc: method is nil but productRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   *domain.Product
	}{Ctx: ctx, P: p}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, p)
}

func (mock *productRepoMock) CreateCalls() []struct {
	Ctx context.Context
	P   *domain.Product
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *productRepoMock) ListReferences(ctx context.Context) ([]string, error) {
	if mock.ListReferencesFunc == nil {
		panic("productRepoMock.ListReferencesFunc: method is nil but productRepo.ListReferences was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockListReferences.Lock()
	mock.calls.ListReferences = append(mock.calls.ListReferences, callInfo)
	mock.lockListReferences.Unlock()
	return mock.ListReferencesFunc(ctx)
}

func (mock *productRepoMock) ListReferencesCalls() []struct{ Ctx context.Context } {
	mock.lockListReferences.RLock()
	calls := mock.calls.ListReferences
	mock.lockListReferences.RUnlock()
	return calls
}
