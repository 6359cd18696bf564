// Package report は両ストアのスナップショットから派生ビューを計算する
// 純粋関数を提供します。入力を変更せず、状態も持ちません。
package report

import (
	"time"

	"github.com/ogurasousui/hrms-sync/internal/core/attendance"
	"github.com/ogurasousui/hrms-sync/internal/core/employee"
)

// FilterAll はフィルタ未指定を表す番兵値です。
const FilterAll = "all"

const dateLayout = "2006-01-02"

// Counts は当日の勤怠集計です。
type Counts struct {
	Present int
	Absent  int
	Total   int
}

// FilterRecords は勤怠レコードを社員・状態の 2 条件で絞り込みます。
// employeeFilter は FilterAll または社員の主キー (Employee.ID) で、
// 社員スナップショット経由で EmployeeID へ解決してから比較します。
// 参照先の社員がスナップショットに存在しない場合は全件不一致として
// 空の結果を返します。両フィルタ指定時は AND です。常に新しいスライスを
// 返し、入力は変更しません。
func FilterRecords(records []attendance.Record, employees []employee.Employee, employeeFilter, statusFilter string) []attendance.Record {
	filtered := make([]attendance.Record, 0, len(records))

	byEmployee := employeeFilter != "" && employeeFilter != FilterAll
	wantEmployeeID := ""
	if byEmployee {
		emp, ok := findByID(employees, employeeFilter)
		if !ok {
			return filtered
		}
		wantEmployeeID = emp.EmployeeID
	}

	byStatus := statusFilter != "" && statusFilter != FilterAll

	for _, r := range records {
		if byEmployee && r.Employee.EmployeeID != wantEmployeeID {
			continue
		}
		if byStatus && string(r.Status) != statusFilter {
			continue
		}
		filtered = append(filtered, r)
	}

	return filtered
}

// TodaysCounts は now の属する暦日 (時刻成分なし) のレコードを状態別に
// 集計します。"今日" は呼び出しごとに now から求め直されるため、
// セッション中に日付が変われば結果も変わります。
func TodaysCounts(records []attendance.Record, now time.Time) Counts {
	today := now.Format(dateLayout)

	var counts Counts
	for _, r := range records {
		if r.Date != today {
			continue
		}
		counts.Total++
		switch r.Status {
		case attendance.StatusPresent:
			counts.Present++
		case attendance.StatusAbsent:
			counts.Absent++
		}
	}

	return counts
}

func findByID(employees []employee.Employee, id string) (employee.Employee, bool) {
	for _, e := range employees {
		if e.ID == id {
			return e, true
		}
	}
	return employee.Employee{}, false
}
