package session

import "sync"

// TokenStore はセッション内で保持するベアラートークンの置き場です。
// 権威サーバーが 401 を返した際に Transport Client から破棄されます。
type TokenStore struct {
	mu    sync.Mutex
	token string
}

// NewTokenStore は初期トークンを保持する TokenStore を生成します。
// 空文字列を渡した場合は未認証セッションとして扱われます。
func NewTokenStore(token string) *TokenStore {
	return &TokenStore{token: token}
}

// Set はトークンを差し替えます。
func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token は現在のトークンを返します。未保持の場合は空文字列です。
func (s *TokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Clear はトークンを破棄します。繰り返し呼んでも安全です。
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}
