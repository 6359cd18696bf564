package integration

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ogurasousui/hrms-sync/internal/adapters/api"
	"github.com/ogurasousui/hrms-sync/internal/adapters/rest"
	"github.com/ogurasousui/hrms-sync/internal/core/attendance"
	"github.com/ogurasousui/hrms-sync/internal/core/employee"
	"github.com/ogurasousui/hrms-sync/internal/core/report"
	"github.com/ogurasousui/hrms-sync/internal/platform/session"
	"github.com/ogurasousui/hrms-sync/internal/stubauthority"
)

type stores struct {
	tokens     *session.TokenStore
	employees  *employee.Store
	attendance *attendance.Store
}

func newStores(baseURL, token string) *stores {
	tokens := session.NewTokenStore(token)
	client := api.NewClient(baseURL, 5*time.Second, tokens)
	return &stores{
		tokens:     tokens,
		employees:  employee.NewStore(rest.NewEmployeeAuthority(client)),
		attendance: attendance.NewStore(rest.NewAttendanceAuthority(client)),
	}
}

func TestSynchronizationRoundTrip(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(stubauthority.New("sekret").Handler())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	s := newStores(srv.URL+"/api", "sekret")

	if err := s.employees.FetchAll(ctx); err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}
	if snap := s.employees.Snapshot(); len(snap.Employees) != 0 {
		t.Fatalf("expected empty collection, got %d", len(snap.Employees))
	}

	created, err := s.employees.Add(ctx, employee.Draft{
		EmployeeID: "EMP001",
		FullName:   "Taro Yamada",
		Email:      "taro@example.com",
		Department: "Engineering",
	})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected authority-assigned id")
	}

	empSnap := s.employees.Snapshot()
	if len(empSnap.Employees) != 1 || empSnap.Employees[0] != *created {
		t.Fatalf("expected store to hold the authority record, got %+v", empSnap.Employees)
	}

	// レコード 0 件の状態からの勤怠記録。
	record, err := s.attendance.Mark(ctx, attendance.MarkInput{
		EmployeeID: "EMP001",
		Date:       "2024-01-15",
		Status:     attendance.StatusPresent,
	})
	if err != nil {
		t.Fatalf("Mark returned error: %v", err)
	}

	attSnap := s.attendance.Snapshot()
	if len(attSnap.Records) != 1 || attSnap.Records[0] != *record {
		t.Fatalf("expected store to hold exactly the authority response, got %+v", attSnap.Records)
	}
	if record.Employee.FullName != "Taro Yamada" {
		t.Errorf("expected embedded employee snapshot, got %+v", record.Employee)
	}

	// 別セッションから再取得しても同じ内容が見える。
	other := newStores(srv.URL+"/api", "sekret")
	if err := other.attendance.FetchAll(ctx); err != nil {
		t.Fatalf("FetchAll returned error: %v", err)
	}
	if len(other.attendance.Snapshot().Records) != 1 {
		t.Fatal("expected refetch to see the marked record")
	}

	filtered := report.FilterRecords(other.attendance.Snapshot().Records, empSnap.Employees, created.ID, report.FilterAll)
	if len(filtered) != 1 {
		t.Errorf("expected join across stores to match, got %d", len(filtered))
	}

	counts := report.TodaysCounts(attSnap.Records, time.Date(2024, 1, 15, 12, 0, 0, 0, time.Local))
	if counts != (report.Counts{Present: 1, Total: 1}) {
		t.Errorf("unexpected counts: %+v", counts)
	}
}

func TestDeleteMissingEmployeeKeepsLocalState(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(stubauthority.New("").Handler())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	s := newStores(srv.URL+"/api", "")

	if _, err := s.employees.Add(ctx, employee.Draft{
		EmployeeID: "EMP001",
		FullName:   "Taro Yamada",
		Email:      "taro@example.com",
		Department: "Engineering",
	}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	err := s.employees.Delete(ctx, "no-such-id")
	if err == nil {
		t.Fatal("expected NotFound error")
	}
	if err.Error() != "Not Found - Resource does not exist" {
		t.Errorf("unexpected message: %s", err)
	}

	snap := s.employees.Snapshot()
	if len(snap.Employees) != 1 {
		t.Errorf("expected employees unchanged, got %d", len(snap.Employees))
	}
	if snap.Err == "" {
		t.Error("expected snapshot error to be set")
	}
}

func TestUnauthorizedClearsSessionToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(stubauthority.New("sekret").Handler())
	t.Cleanup(srv.Close)

	ctx := context.Background()
	s := newStores(srv.URL+"/api", "wrong-token")

	err := s.attendance.FetchAll(ctx)
	if err == nil {
		t.Fatal("expected 401 failure")
	}
	if err.Error() != "Unauthorized - Please login again" {
		t.Errorf("unexpected message: %s", err)
	}

	if got := s.tokens.Token(); got != "" {
		t.Errorf("expected credential to be cleared, got %q", got)
	}

	if snap := s.attendance.Snapshot(); snap.Err != "Unauthorized - Please login again" {
		t.Errorf("unexpected snapshot error: %q", snap.Err)
	}
}
