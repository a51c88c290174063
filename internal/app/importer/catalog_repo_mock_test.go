package importer

import (
	"context"
	"sync"

	"github.com/heartmarshall/medcatalog/internal/domain"
)

var _ catalogRepo = &catalogRepoMock{}

type catalogRepoMock struct {
	ListCategoriesFunc func(ctx context.Context) ([]domain.Category, error)
	ListPartnersFunc   func(ctx context.Context) ([]domain.Partner, error)

	calls struct {
		ListCategories []struct {
			Ctx context.Context
		}
		ListPartners []struct {
			Ctx context.Context
		}
	}
	lockListCategories sync.RWMutex
	lockListPartners   sync.RWMutex
}

func (mock *catalogRepoMock) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if mock.ListCategoriesFunc == nil {
		panic("catalogRepoMock.ListCategoriesFunc: method is nil but catalogRepo.ListCategories was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockListCategories.Lock()
	mock.calls.ListCategories = append(mock.calls.ListCategories, callInfo)
	mock.lockListCategories.Unlock()
	return mock.ListCategoriesFunc(ctx)
}

func (mock *catalogRepoMock) ListCategoriesCalls() []struct{ Ctx context.Context } {
	mock.lockListCategories.RLock()
	calls := mock.calls.ListCategories
	mock.lockListCategories.RUnlock()
	return calls
}

func (mock *catalogRepoMock) ListPartners(ctx context.Context) ([]domain.Partner, error) {
	if mock.ListPartnersFunc == nil {
		panic("catalogRepoMock.ListPartnersFunc: method is nil but catalogRepo.ListPartners was just called")
	}
	callInfo := struct{ Ctx context.Context }{Ctx: ctx}
	mock.lockListPartners.Lock()
	mock.calls.ListPartners = append(mock.calls.ListPartners, callInfo)
	mock.lockListPartners.Unlock()
	return mock.ListPartnersFunc(ctx)
}

func (mock *catalogRepoMock) ListPartnersCalls() []struct{ Ctx context.Context } {
	mock.lockListPartners.RLock()
	calls := mock.calls.ListPartners
	mock.lockListPartners.RUnlock()
	return calls
}
