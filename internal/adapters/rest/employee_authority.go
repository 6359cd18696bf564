package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ogurasousui/hrms-sync/internal/core/employee"
)

// Requester は Transport Client の発行面です。
type Requester interface {
	Request(ctx context.Context, method, path string, body any) ([]byte, error)
}

// EmployeeAuthority は REST 権威サーバーを利用した employee.Authority の実装です。
type EmployeeAuthority struct {
	client Requester
}

// NewEmployeeAuthority は EmployeeAuthority を生成します。
func NewEmployeeAuthority(client Requester) *EmployeeAuthority {
	return &EmployeeAuthority{client: client}
}

type employeeDTO struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type createEmployeePayload struct {
	EmployeeID string `json:"employeeId"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// List はコレクション全体を取得します。封筒に count が含まれない場合は 0 を返します。
func (a *EmployeeAuthority) List(ctx context.Context) ([]employee.Employee, int, error) {
	body, err := a.client.Request(ctx, http.MethodGet, "/employees/", nil)
	if err != nil {
		return nil, 0, err
	}

	raw, count := decodeList(body)

	var dtos []employeeDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, 0, fmt.Errorf("rest: decode employees: %w", err)
	}

	employees := make([]employee.Employee, 0, len(dtos))
	for _, dto := range dtos {
		employees = append(employees, dto.toEntity())
	}
	return employees, count, nil
}

// Create は社員を作成し、権威サーバーが採番したレコードを返します。
func (a *EmployeeAuthority) Create(ctx context.Context, draft employee.Draft) (*employee.Employee, error) {
	payload := createEmployeePayload{
		EmployeeID: draft.EmployeeID,
		FullName:   draft.FullName,
		Email:      draft.Email,
		Department: draft.Department,
	}

	body, err := a.client.Request(ctx, http.MethodPost, "/employees/", payload)
	if err != nil {
		return nil, err
	}

	var dto employeeDTO
	if err := json.Unmarshal(decodeItem(body), &dto); err != nil {
		return nil, fmt.Errorf("rest: decode created employee: %w", err)
	}

	created := dto.toEntity()
	return &created, nil
}

// Delete は主キーで社員を削除します。
func (a *EmployeeAuthority) Delete(ctx context.Context, id string) error {
	_, err := a.client.Request(ctx, http.MethodDelete, "/employees/"+url.PathEscape(id), nil)
	return err
}

func (d employeeDTO) toEntity() employee.Employee {
	return employee.Employee{
		ID:         d.ID,
		EmployeeID: d.EmployeeID,
		FullName:   d.FullName,
		Email:      d.Email,
		Department: d.Department,
	}
}
