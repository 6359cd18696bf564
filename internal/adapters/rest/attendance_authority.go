package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ogurasousui/hrms-sync/internal/core/attendance"
)

// AttendanceAuthority は REST 権威サーバーを利用した attendance.Authority の実装です。
type AttendanceAuthority struct {
	client Requester
}

// NewAttendanceAuthority は AttendanceAuthority を生成します。
func NewAttendanceAuthority(client Requester) *AttendanceAuthority {
	return &AttendanceAuthority{client: client}
}

type attendanceDTO struct {
	ID       string            `json:"id"`
	Employee employeeDTO       `json:"employee"`
	Date     string            `json:"date"`
	Status   attendance.Status `json:"status"`
}

type markAttendancePayload struct {
	EmployeeID string            `json:"employeeId"`
	Date       string            `json:"date"`
	Status     attendance.Status `json:"status"`
}

// List はコレクション全体を取得します。
func (a *AttendanceAuthority) List(ctx context.Context) ([]attendance.Record, error) {
	body, err := a.client.Request(ctx, http.MethodGet, "/attendance/", nil)
	if err != nil {
		return nil, err
	}

	raw, _ := decodeList(body)

	var dtos []attendanceDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("rest: decode attendance records: %w", err)
	}

	records := make([]attendance.Record, 0, len(dtos))
	for _, dto := range dtos {
		records = append(records, dto.toEntity())
	}
	return records, nil
}

// Create は勤怠を記録し、権威サーバーが採番したレコードを返します。
func (a *AttendanceAuthority) Create(ctx context.Context, in attendance.MarkInput) (*attendance.Record, error) {
	payload := markAttendancePayload{
		EmployeeID: in.EmployeeID,
		Date:       in.Date,
		Status:     in.Status,
	}

	body, err := a.client.Request(ctx, http.MethodPost, "/attendance/", payload)
	if err != nil {
		return nil, err
	}

	var dto attendanceDTO
	if err := json.Unmarshal(decodeItem(body), &dto); err != nil {
		return nil, fmt.Errorf("rest: decode created attendance record: %w", err)
	}

	created := dto.toEntity()
	return &created, nil
}

func (d attendanceDTO) toEntity() attendance.Record {
	return attendance.Record{
		ID: d.ID,
		Employee: attendance.EmployeeSnapshot{
			ID:         d.Employee.ID,
			EmployeeID: d.Employee.EmployeeID,
			FullName:   d.Employee.FullName,
			Email:      d.Employee.Email,
			Department: d.Employee.Department,
		},
		Date:   d.Date,
		Status: d.Status,
	}
}
