package employee

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"sync"
)

// Snapshot は Store の現在状態の値コピーです。Employees は Store 内部の
// スライスをエイリアスしません。
type Snapshot struct {
	Employees []Employee
	Count     int
	IsLoading bool
	Err       string
}

// Store はセッション内の社員コレクションを所有し、権威サーバーと同期します。
// 変更操作は confirm-then-apply 方式で、権威サーバーの確認が取れてから
// ローカル状態へ反映します。失敗した操作が既存の Employees を壊すことは
// ありません。
type Store struct {
	authority Authority

	mu        sync.Mutex
	employees []Employee
	count     int
	loading   bool
	lastErr   string
}

// NewStore は Store を生成します。セッションごとに 1 インスタンスを想定します。
func NewStore(authority Authority) *Store {
	return &Store{authority: authority}
}

// FetchAll はコレクション全体を取得し、成功時は Employees を受信順のまま
// 丸ごと置き換えます。失敗時は既存の Employees を保持したまま Err に
// 表示用メッセージを記録します。
func (s *Store) FetchAll(ctx context.Context) error {
	s.begin()

	employees, count, err := s.authority.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.lastErr = err.Error()
		return err
	}

	s.employees = employees
	s.count = count
	return nil
}

// Add は社員を作成します。権威サーバーが返したレコードを Employees の
// 末尾へ追加し、そのレコードを返します。失敗時は Err を記録した上で
// エラーを呼び出し側へ返し、Employees は変更しません。
func (s *Store) Add(ctx context.Context, draft Draft) (*Employee, error) {
	normalized, err := normalizeDraft(draft)
	if err != nil {
		return nil, err
	}

	s.begin()

	created, err := s.authority.Create(ctx, normalized)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.lastErr = err.Error()
		return nil, err
	}

	s.employees = append(s.employees, *created)
	return created, nil
}

// Delete は主キーで社員を削除します。存在しない id もそのまま権威サーバーへ
// 転送し、返ってきたエラーを伝播します。
func (s *Store) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}

	s.begin()

	err := s.authority.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.lastErr = err.Error()
		return err
	}

	filtered := s.employees[:0:0]
	for _, e := range s.employees {
		if e.ID != id {
			filtered = append(filtered, e)
		}
	}
	s.employees = filtered
	return nil
}

// Snapshot は現在状態の値コピーを返します。
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Employee, len(s.employees))
	copy(items, s.employees)

	return Snapshot{
		Employees: items,
		Count:     s.count,
		IsLoading: s.loading,
		Err:       s.lastErr,
	}
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastErr = ""
}

func normalizeDraft(draft Draft) (Draft, error) {
	employeeID := strings.TrimSpace(draft.EmployeeID)
	if employeeID == "" {
		return Draft{}, ErrInvalidEmployeeID
	}

	fullName := strings.TrimSpace(draft.FullName)
	if fullName == "" {
		return Draft{}, ErrInvalidFullName
	}

	email := strings.TrimSpace(draft.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return Draft{}, ErrInvalidEmail
	}

	department := strings.TrimSpace(draft.Department)
	if department == "" {
		return Draft{}, ErrInvalidDepartment
	}

	return Draft{
		EmployeeID: employeeID,
		FullName:   fullName,
		Email:      email,
		Department: department,
	}, nil
}
