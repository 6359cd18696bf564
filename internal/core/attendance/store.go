package attendance

import (
	"context"
	"strings"
	"sync"
)

// Snapshot は Store の現在状態の値コピーです。
type Snapshot struct {
	Records   []Record
	IsLoading bool
	Err       string
}

// Store はセッション内の勤怠コレクションを所有し、権威サーバーと同期します。
// Employee Store と同じ状態遷移を持ち、変更は confirm-then-apply 方式です。
type Store struct {
	authority Authority

	mu      sync.Mutex
	records []Record
	loading bool
	lastErr string
}

// NewStore は Store を生成します。
func NewStore(authority Authority) *Store {
	return &Store{authority: authority}
}

// FetchAll はコレクション全体を取得し、成功時は Records を受信順のまま
// 丸ごと置き換えます。失敗時は既存の Records を保持したまま Err を記録します。
func (s *Store) FetchAll(ctx context.Context) error {
	s.begin()

	records, err := s.authority.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.lastErr = err.Error()
		return err
	}

	s.records = records
	return nil
}

// Mark は勤怠を記録します。権威サーバーが返したレコードを Records の末尾へ
// 追加し、そのレコードを返します。(employeeId, date) の一意性はここでは
// 検証しません。重複の扱いは権威サーバーの責務です。
func (s *Store) Mark(ctx context.Context, in MarkInput) (*Record, error) {
	normalized, err := normalizeMarkInput(in)
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

	s.records = append(s.records, *created)
	return created, nil
}

// ByEmployee は埋め込まれた社員コードが一致するレコードを返します。
// 呼び出しのたびに現在のスナップショットから計算し直す派生ビューで、
// 結果はキャッシュされません。
func (s *Store) ByEmployee(employeeID string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]Record, 0)
	for _, r := range s.records {
		if r.Employee.EmployeeID == employeeID {
			matched = append(matched, r)
		}
	}
	return matched
}

// Snapshot は現在状態の値コピーを返します。
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]Record, len(s.records))
	copy(items, s.records)

	return Snapshot{
		Records:   items,
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

func normalizeMarkInput(in MarkInput) (MarkInput, error) {
	employeeID := strings.TrimSpace(in.EmployeeID)
	if employeeID == "" {
		return MarkInput{}, ErrInvalidEmployeeID
	}

	// 形式の検証は権威サーバーに委ねる。空のみ弾く。
	date := strings.TrimSpace(in.Date)
	if date == "" {
		return MarkInput{}, ErrInvalidDate
	}

	switch in.Status {
	case StatusPresent, StatusAbsent:
	default:
		return MarkInput{}, ErrInvalidStatus
	}

	return MarkInput{EmployeeID: employeeID, Date: date, Status: in.Status}, nil
}
