// internal/reports/store_test.go
package reports

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwhite/nexus/internal/api"
)

// fakeService scripts report operations and counts list calls.
type fakeService struct {
	listCalls    int
	listResp     *api.ReportListResponse
	listErr      error
	getResp      *api.ReportDetail
	getErr       error
	deleteErr    error
	downloadData []byte
	downloadErr  error
	lastPage     int
	lastLimit    int
}

func (f *fakeService) ListReports(ctx context.Context, page, limit int, sort, order string) (*api.ReportListResponse, error) {
	f.listCalls++
	f.lastPage = page
	f.lastLimit = limit
	return f.listResp, f.listErr
}

func (f *fakeService) GetReport(ctx context.Context, reportID string) (*api.ReportDetail, error) {
	return f.getResp, f.getErr
}

func (f *fakeService) DeleteReport(ctx context.Context, reportID string) error {
	return f.deleteErr
}

func (f *fakeService) DownloadReport(ctx context.Context, reportID string) ([]byte, error) {
	return f.downloadData, f.downloadErr
}

func listPage(total int) *api.ReportListResponse {
	return &api.ReportListResponse{
		Reports: []api.ReportSummary{{ReportID: "r-1", CompanyName: "Apple"}},
		Total:   total,
		Page:    1,
		Limit:   20,
	}
}

func TestFetchReportsReplacesCachedPage(t *testing.T) {
	t.Parallel()

	svc := &fakeService{listResp: listPage(3)}
	store := NewStore(svc, "")

	store.FetchReports(context.Background(), 2, 10)

	snap := store.Snapshot()
	if snap.Loading {
		t.Error("loading flag should be cleared after fetch")
	}
	if snap.Err != "" {
		t.Errorf("unexpected error: %q", snap.Err)
	}
	if snap.Reports == nil || snap.Reports.Total != 3 {
		t.Fatalf("cached page: %+v", snap.Reports)
	}
	if svc.lastPage != 2 || svc.lastLimit != 10 {
		t.Errorf("pagination passthrough: got page=%d limit=%d", svc.lastPage, svc.lastLimit)
	}
}

func TestFetchReportsFailureKeepsPreviousPage(t *testing.T) {
	t.Parallel()

	svc := &fakeService{listResp: listPage(3)}
	store := NewStore(svc, "")
	store.FetchReports(context.Background(), 1, 20)

	svc.listErr = errors.New("service unavailable")
	store.FetchReports(context.Background(), 1, 20)

	snap := store.Snapshot()
	if snap.Err != "service unavailable" {
		t.Errorf("error message: got %q", snap.Err)
	}
	if snap.Loading {
		t.Error("loading flag should be cleared on failure")
	}
	if snap.Reports == nil || snap.Reports.Total != 3 {
		t.Error("previous page should survive a failed refresh")
	}
}

func TestGetReportSwallowsFailure(t *testing.T) {
	t.Parallel()

	svc := &fakeService{getErr: errors.New("boom")}
	store := NewStore(svc, "")

	if detail := store.GetReport(context.Background(), "r-1"); detail != nil {
		t.Fatal("failed get should yield nil")
	}

	svc.getErr = nil
	svc.getResp = &api.ReportDetail{ReportID: "r-1"}
	if detail := store.GetReport(context.Background(), "r-1"); detail == nil || detail.ReportID != "r-1" {
		t.Fatalf("get result: %+v", detail)
	}
}

func TestDeleteReportRefreshesExactlyOnce(t *testing.T) {
	t.Parallel()

	svc := &fakeService{listResp: listPage(0)}
	store := NewStore(svc, "")

	if ok := store.DeleteReport(context.Background(), "r-1"); !ok {
		t.Fatal("delete should report success")
	}
	if svc.listCalls != 1 {
		t.Fatalf("successful delete must trigger exactly one refresh, got %d", svc.listCalls)
	}
	if svc.lastPage != 1 || svc.lastLimit != 20 {
		t.Errorf("refresh should use defaults, got page=%d limit=%d", svc.lastPage, svc.lastLimit)
	}
}

func TestDeleteReportFailureTriggersNoRefresh(t *testing.T) {
	t.Parallel()

	svc := &fakeService{deleteErr: errors.New("not found")}
	store := NewStore(svc, "")

	if ok := store.DeleteReport(context.Background(), "r-1"); ok {
		t.Fatal("delete should report failure")
	}
	if svc.listCalls != 0 {
		t.Fatalf("failed delete must not refresh, got %d list calls", svc.listCalls)
	}
}

func TestDownloadReportWritesDefaultFilename(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := &fakeService{downloadData: []byte("# Report")}
	store := NewStore(svc, dir)

	path, err := store.DownloadReport(context.Background(), "r-1", "")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if path != filepath.Join(dir, "report_r-1.md") {
		t.Errorf("returned path: got %q", path)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report_r-1.md"))
	if err != nil {
		t.Fatalf("expected default-named download file: %v", err)
	}
	if string(data) != "# Report" {
		t.Errorf("file contents: got %q", data)
	}
}

func TestDownloadReportHonorsFilename(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := &fakeService{downloadData: []byte("body")}
	store := NewStore(svc, dir)

	if _, err := store.DownloadReport(context.Background(), "r-1", "analysis.md"); err != nil {
		t.Fatalf("download: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "analysis.md")); err != nil {
		t.Fatalf("expected supplied filename to be used: %v", err)
	}
}

func TestDownloadReportFailureWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := &fakeService{downloadErr: errors.New("gone")}
	store := NewStore(svc, dir)

	if _, err := store.DownloadReport(context.Background(), "r-1", ""); err == nil {
		t.Fatal("expected download error to be returned")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("no file should be written on failure, found %d entries", len(entries))
	}
}

func TestRefreshUsesDefaults(t *testing.T) {
	t.Parallel()

	svc := &fakeService{listResp: listPage(1)}
	store := NewStore(svc, "")

	store.Refresh(context.Background())

	if svc.lastPage != 1 || svc.lastLimit != 20 {
		t.Errorf("refresh defaults: got page=%d limit=%d", svc.lastPage, svc.lastLimit)
	}
}
