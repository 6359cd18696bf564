package stubauthority

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
}

func TestAuthority_EmployeeLifecycle(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(New("").Handler())
	t.Cleanup(srv.Close)

	resp := postJSON(t, srv.URL+"/api/employees/", map[string]string{
		"employeeId": "EMP001",
		"full_name":  "Taro Yamada",
		"email":      "taro@example.com",
		"department": "Engineering",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var created wireEmployee
	decodeData(t, resp, &created)
	if created.ID == "" {
		t.Fatal("expected server-assigned id")
	}

	listResp, err := http.Get(srv.URL + "/api/employees/")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	defer listResp.Body.Close()

	var listed struct {
		Data  []wireEmployee `json:"data"`
		Count int            `json:"count"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listed); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if listed.Count != 1 || len(listed.Data) != 1 || listed.Data[0].ID != created.ID {
		t.Errorf("unexpected list response: %+v", listed)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/employees/"+created.ID, nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", delResp.StatusCode)
	}
}

func TestAuthority_DuplicateEmployeeIDConflicts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(New("").Handler())
	t.Cleanup(srv.Close)

	draft := map[string]string{
		"employeeId": "EMP001",
		"full_name":  "Taro Yamada",
		"email":      "taro@example.com",
		"department": "Engineering",
	}

	first := postJSON(t, srv.URL+"/api/employees/", draft)
	first.Body.Close()
	if first.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.StatusCode)
	}

	second := postJSON(t, srv.URL+"/api/employees/", draft)
	second.Body.Close()
	if second.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d", second.StatusCode)
	}
}

func TestAuthority_DeleteMissingEmployee(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(New("").Handler())
	t.Cleanup(srv.Close)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/employees/no-such-id", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestAuthority_AttendanceValidation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(New("").Handler())
	t.Cleanup(srv.Close)

	created := postJSON(t, srv.URL+"/api/employees/", map[string]string{
		"employeeId": "EMP001",
		"full_name":  "Taro Yamada",
		"email":      "taro@example.com",
		"department": "Engineering",
	})
	created.Body.Close()

	badDate := postJSON(t, srv.URL+"/api/attendance/", map[string]string{
		"employeeId": "EMP001",
		"date":       "15-01-2024",
		"status":     "Present",
	})
	defer badDate.Body.Close()
	if badDate.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", badDate.StatusCode)
	}

	var parsed struct {
		Details map[string][]string `json:"details"`
	}
	if err := json.NewDecoder(badDate.Body).Decode(&parsed); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if len(parsed.Details["date"]) == 0 {
		t.Errorf("expected details.date in error body, got %+v", parsed)
	}

	unknown := postJSON(t, srv.URL+"/api/attendance/", map[string]string{
		"employeeId": "EMP999",
		"date":       "2024-01-15",
		"status":     "Present",
	})
	unknown.Body.Close()
	if unknown.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown employee, got %d", unknown.StatusCode)
	}

	ok := postJSON(t, srv.URL+"/api/attendance/", map[string]string{
		"employeeId": "EMP001",
		"date":       "2024-01-15",
		"status":     "Present",
	})
	if ok.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", ok.StatusCode)
	}

	var record wireAttendance
	decodeData(t, ok, &record)
	if record.Employee.EmployeeID != "EMP001" || record.Employee.FullName != "Taro Yamada" {
		t.Errorf("expected embedded employee snapshot, got %+v", record.Employee)
	}
}

func TestAuthority_RequiresToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(New("sekret").Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/employees/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/employees/", nil)
	req.Header.Set("Authorization", "Bearer sekret")
	authed, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	authed.Body.Close()
	if authed.StatusCode != http.StatusOK {
		t.Errorf("expected 200 with token, got %d", authed.StatusCode)
	}
}
