// internal/reports/store.go
// Package reports mediates list, fetch, delete, and download of stored reports
// with a single cached page of results.
package reports

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/mwhite/nexus/internal/api"
	"github.com/mwhite/nexus/internal/logging"
	"github.com/mwhite/nexus/internal/util"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

// Service is the slice of the API client the store needs.
type Service interface {
	ListReports(ctx context.Context, page, limit int, sort, order string) (*api.ReportListResponse, error)
	GetReport(ctx context.Context, reportID string) (*api.ReportDetail, error)
	DeleteReport(ctx context.Context, reportID string) error
	DownloadReport(ctx context.Context, reportID string) ([]byte, error)
}

// Snapshot is a point-in-time view of the cached listing state.
type Snapshot struct {
	Reports *api.ReportListResponse
	Loading bool
	Err     string
}

// Store caches exactly one page of the report listing at a time. List and
// detail entities are server-owned; the store never mutates them, it only
// replaces its cached page.
type Store struct {
	mu          sync.Mutex
	svc         Service
	reports     *api.ReportListResponse
	loading     bool
	errMsg      string
	downloadDir string
}

// NewStore creates a report store writing downloads into downloadDir
// (the working directory when empty).
func NewStore(svc Service, downloadDir string) *Store {
	return &Store{svc: svc, downloadDir: downloadDir}
}

// FetchReports replaces the cached page with the requested one. On failure the
// previous page is kept and the error message recorded; the loading flag is
// cleared either way.
func (s *Store) FetchReports(ctx context.Context, page, limit int) {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	s.mu.Lock()
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	resp, err := s.svc.ListReports(ctx, page, limit, "", "")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.reports = resp
}

// GetReport fetches one report by id. Failures are logged and yield nil; this
// is a best-effort path that never propagates an error.
func (s *Store) GetReport(ctx context.Context, reportID string) *api.ReportDetail {
	detail, err := s.svc.GetReport(ctx, reportID)
	if err != nil {
		logging.LogEvent("[REPORTS] get report %s: %v", reportID, err)
		return nil
	}
	return detail
}

// DeleteReport removes a report and, on success, refreshes the cached listing
// with defaults so the page reflects the deletion. Returns whether the delete
// succeeded; failures are logged, never thrown.
func (s *Store) DeleteReport(ctx context.Context, reportID string) bool {
	if err := s.svc.DeleteReport(ctx, reportID); err != nil {
		logging.LogEvent("[REPORTS] delete report %s: %v", reportID, err)
		return false
	}
	s.FetchReports(ctx, defaultPage, defaultLimit)
	return true
}

// DownloadReport fetches the rendered report and saves it under filename, or
// report_<id>.md when filename is empty. It returns the path written. Failures
// never disturb the cached listing; they are logged and returned.
func (s *Store) DownloadReport(ctx context.Context, reportID, filename string) (string, error) {
	data, err := s.svc.DownloadReport(ctx, reportID)
	if err != nil {
		logging.LogEvent("[REPORTS] download report %s: %v", reportID, err)
		return "", err
	}
	if filename == "" {
		filename = "report_" + reportID + ".md"
	}
	path := filename
	if s.downloadDir != "" && !filepath.IsAbs(filename) {
		path = filepath.Join(s.downloadDir, filename)
	}
	if err := util.WriteFile(path, data); err != nil {
		logging.LogEvent("[REPORTS] save report %s to %s: %v", reportID, path, err)
		return "", err
	}
	logging.LogEvent("[REPORTS] saved report %s to %s", reportID, path)
	return path, nil
}

// Refresh re-fetches the first page with default settings.
func (s *Store) Refresh(ctx context.Context) {
	s.FetchReports(ctx, defaultPage, defaultLimit)
}

// Snapshot returns the cached page, loading flag, and last error message.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Reports: s.reports, Loading: s.loading, Err: s.errMsg}
}
