package asset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/medcatalog/internal/config"
)

// Kind selects the target directory and default extension of a download.
type Kind string

const (
	KindImage    Kind = "image"
	KindDocument Kind = "document"
)

// DownloadResult is the outcome of GetOrDownload. A failed download is a
// value, not an error.
type DownloadResult struct {
	OK bool
	// Path is the public, slash-prefixed path stored in the catalog.
	Path      string
	LocalPath string
	Reused    bool
	Reason    string
}

// Stats counts fetcher outcomes.
type Stats struct {
	Downloaded int
	Reused     int
	Failed     int
}

const defaultRetryDelay = 500 * time.Millisecond

// Fetcher downloads assets once per filename and reuses existing files.
type Fetcher struct {
	cfg        config.AssetsConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	index      *Index
	log        *slog.Logger
	retryDelay time.Duration

	scanOnce sync.Once

	mu    sync.Mutex
	stats Stats
}

// NewFetcher creates a Fetcher. The index is built on first use.
func NewFetcher(cfg config.AssetsConfig, logger *slog.Logger) *Fetcher {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &Fetcher{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, burst),
		index:      NewIndex(),
		log:        logger.With("adapter", "asset"),
		retryDelay: defaultRetryDelay,
	}
}

// Stats returns a snapshot of the counters.
func (f *Fetcher) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

// IndexedFiles returns the number of files the fetcher knows about.
func (f *Fetcher) IndexedFiles() int {
	f.ensureIndex()
	return f.index.Len()
}

func (f *Fetcher) ensureIndex() {
	f.scanOnce.Do(func() {
		// Download targets are always indexed so an existing file is
		// reused rather than overwritten.
		dirs := append(slices.Clone(f.cfg.ScanDirs), f.cfg.ImageDir, f.cfg.DocumentDir)
		if err := f.index.Scan(dirs); err != nil {
			f.log.Warn("asset scan incomplete", slog.String("error", err.Error()))
		}
		f.log.Info("asset index built", slog.Int("files", f.index.Len()))
	})
}

// GetOrDownload returns the public path of filename, downloading rawURL
// only when no file of that name is indexed.
func (f *Fetcher) GetOrDownload(ctx context.Context, rawURL, filename string, kind Kind) DownloadResult {
	f.ensureIndex()

	if filename == "" {
		return f.fail(rawURL, "no filename in url")
	}

	if local, ok := f.index.Lookup(filename); ok {
		f.mu.Lock()
		f.stats.Reused++
		f.mu.Unlock()
		f.log.DebugContext(ctx, "asset reused", slog.String("file", filename))
		return DownloadResult{OK: true, Path: f.publicPath(local), LocalPath: local, Reused: true}
	}

	dest, err := filepath.Abs(filepath.Join(f.dirFor(kind), filename))
	if err != nil {
		return f.fail(rawURL, err.Error())
	}
	if err := f.download(ctx, rawURL, dest); err != nil {
		return f.fail(rawURL, err.Error())
	}

	f.index.Add(filename, dest)
	f.mu.Lock()
	f.stats.Downloaded++
	f.mu.Unlock()
	f.log.InfoContext(ctx, "asset downloaded", slog.String("file", filename), slog.String("url", rawURL))

	return DownloadResult{OK: true, Path: f.publicPath(dest), LocalPath: dest}
}

func (f *Fetcher) fail(rawURL, reason string) DownloadResult {
	f.mu.Lock()
	f.stats.Failed++
	f.mu.Unlock()
	f.log.Warn("asset download failed", slog.String("url", rawURL), slog.String("reason", reason))
	return DownloadResult{Reason: reason}
}

func (f *Fetcher) dirFor(kind Kind) string {
	if kind == KindDocument {
		return f.cfg.DocumentDir
	}
	return f.cfg.ImageDir
}

// publicPath turns a local path into a slash-prefixed path relative to
// the public directory.
func (f *Fetcher) publicPath(local string) string {
	root, err := filepath.Abs(f.cfg.PublicDir)
	if err == nil {
		if rel, err := filepath.Rel(root, local); err == nil && !strings.HasPrefix(rel, "..") {
			return "/" + filepath.ToSlash(rel)
		}
	}
	return "/" + filepath.Base(local)
}

// download streams rawURL into a temporary file next to dest and renames
// it into place once complete. Nothing is left behind on failure.
func (f *Fetcher) download(ctx context.Context, rawURL, dest string) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if f.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", f.cfg.UserAgent)
	}

	resp, err := f.doWithRetry(ctx, req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	// The dot prefix keeps an abandoned part file out of the index.
	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*.part")
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename file: %w", err)
	}
	return nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (f *Fetcher) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := f.httpClient.Do(req)
	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	f.log.WarnContext(ctx, "asset retry", slog.String("url", req.URL.String()), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(f.retryDelay):
	}
	return f.httpClient.Do(req)
}

// FilenameFromURL returns the unescaped basename of the URL path. Names
// without an extension get .jpg for images and .pdf for documents.
func FilenameFromURL(rawURL string, kind Kind) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if unescaped, err := url.PathUnescape(base); err == nil {
		base = unescaped
	}
	base = filepath.Base(filepath.Clean("/" + base))
	if base == "/" || base == "." || base == "" {
		return ""
	}
	if path.Ext(base) == "" {
		if kind == KindDocument {
			base += ".pdf"
		} else {
			base += ".jpg"
		}
	}
	return base
}
