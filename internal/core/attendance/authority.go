package attendance

import "context"

// Authority はリモート権威サーバーに対する勤怠コレクション操作の抽象です。
type Authority interface {
	List(ctx context.Context) ([]Record, error)
	Create(ctx context.Context, in MarkInput) (*Record, error)
}

// MarkInput は勤怠記録時の入力です。EmployeeID は人間向けコード
// (Employee.EmployeeID) を指します。
type MarkInput struct {
	EmployeeID string
	Date       string
	Status     Status
}
