// Package stubauthority は公開済みの REST 契約を実装したインメモリの
// 権威サーバーです。リモートサービスなしでクライアントを動かすための
// 開発・テスト用実装で、封筒形式やエラー形状も本物に合わせています。
package stubauthority

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type wireEmployee struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

type wireAttendance struct {
	ID       string       `json:"id"`
	Employee wireEmployee `json:"employee"`
	Date     string       `json:"date"`
	Status   string       `json:"status"`
}

// Authority はインメモリの権威サーバー本体です。
type Authority struct {
	token string

	mu        sync.Mutex
	employees []wireEmployee
	records   []wireAttendance
}

// New は Authority を生成します。token が空でない場合、全リクエストに
// 一致するベアラートークンを要求し、不一致には 401 を返します。
func New(token string) *Authority {
	return &Authority{token: token}
}

// Handler は /api 配下に REST 契約を公開するハンドラを返します。
func (a *Authority) Handler() http.Handler {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(a.requireToken)
		r.Get("/employees/", a.listEmployees)
		r.Post("/employees/", a.createEmployee)
		r.Delete("/employees/{id}", a.deleteEmployee)
		r.Get("/attendance/", a.listAttendance)
		r.Post("/attendance/", a.createAttendance)
	})
	return r
}

func (a *Authority) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.token != "" && r.Header.Get("Authorization") != "Bearer "+a.token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid or missing token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Authority) listEmployees(w http.ResponseWriter, _ *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	items := make([]wireEmployee, len(a.employees))
	copy(items, a.employees)

	writeJSON(w, http.StatusOK, map[string]any{"data": items, "count": len(items)})
}

func (a *Authority) createEmployee(w http.ResponseWriter, r *http.Request) {
	var in wireEmployee
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed request body"})
		return
	}

	for field, value := range map[string]string{
		"employeeId": in.EmployeeID,
		"full_name":  in.FullName,
		"email":      in.Email,
		"department": in.Department,
	} {
		if strings.TrimSpace(value) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": field + " is required"})
			return
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, e := range a.employees {
		if e.EmployeeID == in.EmployeeID {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "Employee with this employeeId already exists"})
			return
		}
	}

	created := wireEmployee{
		ID:         uuid.NewString(),
		EmployeeID: in.EmployeeID,
		FullName:   in.FullName,
		Email:      in.Email,
		Department: in.Department,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	a.employees = append(a.employees, created)

	writeJSON(w, http.StatusCreated, map[string]any{"data": created})
}

func (a *Authority) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a.mu.Lock()
	defer a.mu.Unlock()

	for i, e := range a.employees {
		if e.ID == id {
			a.employees = append(a.employees[:i], a.employees[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Employee not found"})
}

func (a *Authority) listAttendance(w http.ResponseWriter, _ *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()

	items := make([]wireAttendance, len(a.records))
	copy(items, a.records)

	writeJSON(w, http.StatusOK, map[string]any{"data": items})
}

func (a *Authority) createAttendance(w http.ResponseWriter, r *http.Request) {
	var in struct {
		EmployeeID string `json:"employeeId"`
		Date       string `json:"date"`
		Status     string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Malformed request body"})
		return
	}

	if strings.TrimSpace(in.EmployeeID) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "employeeId is required"})
		return
	}

	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"details": map[string][]string{"date": {"Date has wrong format. Use YYYY-MM-DD."}},
		})
		return
	}

	if in.Status != "Present" && in.Status != "Absent" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "status must be Present or Absent"})
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	var owner *wireEmployee
	for i := range a.employees {
		if a.employees[i].EmployeeID == in.EmployeeID {
			owner = &a.employees[i]
			break
		}
	}
	if owner == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Employee not found"})
		return
	}

	// (employeeId, date) の重複はここでは弾かない。契約上クライアントは
	// 重複排除を権威サーバーへ委ねるが、このスタブは受理する側に倒す。
	created := wireAttendance{
		ID:       uuid.NewString(),
		Employee: *owner,
		Date:     in.Date,
		Status:   in.Status,
	}
	a.records = append(a.records, created)

	writeJSON(w, http.StatusCreated, map[string]any{"data": created})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
