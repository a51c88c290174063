package importer

import (
	"context"
	"sync"

	"github.com/heartmarshall/medcatalog/internal/adapter/asset"
)

var _ assetFetcher = &assetFetcherMock{}

type assetFetcherMock struct {
	GetOrDownloadFunc func(ctx context.Context, rawURL string, filename string, kind asset.Kind) asset.DownloadResult
	StatsFunc         func() asset.Stats

	calls struct {
		GetOrDownload []struct {
			Ctx      context.Context
			RawURL   string
			Filename string
			Kind     asset.Kind
		}
		Stats []struct{}
	}
	lockGetOrDownload sync.RWMutex
	lockStats         sync.RWMutex
}

func (mock *assetFetcherMock) GetOrDownload(ctx context.Context, rawURL string, filename string, kind asset.Kind) asset.DownloadResult {
	if mock.GetOrDownloadFunc == nil {
		panic("assetFetcherMock.GetOrDownloadFunc: method is nil but assetFetcher.GetOrDownload was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		RawURL   string
		Filename string
		Kind     asset.Kind
	}{Ctx: ctx, RawURL: rawURL, Filename: filename, Kind: kind}
	mock.lockGetOrDownload.Lock()
	mock.calls.GetOrDownload = append(mock.calls.GetOrDownload, callInfo)
	mock.lockGetOrDownload.Unlock()
	return mock.GetOrDownloadFunc(ctx, rawURL, filename, kind)
}

func (mock *assetFetcherMock) GetOrDownloadCalls() []struct {
	Ctx      context.Context
	RawURL   string
	Filename string
	Kind     asset.Kind
} {
	mock.lockGetOrDownload.RLock()
	calls := mock.calls.GetOrDownload
	mock.lockGetOrDownload.RUnlock()
	return calls
}

func (mock *assetFetcherMock) Stats() asset.Stats {
	if mock.StatsFunc == nil {
		panic("assetFetcherMock.StatsFunc: method is nil but assetFetcher.Stats was just called")
	}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, struct{}{})
	mock.lockStats.Unlock()
	return mock.StatsFunc()
}

func (mock *assetFetcherMock) StatsCalls() []struct{} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}
