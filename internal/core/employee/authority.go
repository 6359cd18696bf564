package employee

import "context"

// Authority はリモート権威サーバーに対する社員コレクション操作の抽象です。
type Authority interface {
	List(ctx context.Context) ([]Employee, int, error)
	Create(ctx context.Context, draft Draft) (*Employee, error)
	Delete(ctx context.Context, id string) error
}
