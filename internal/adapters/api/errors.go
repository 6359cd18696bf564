package api

import "errors"

// Kind は Transport Client が分類する失敗の種別です。
type Kind string

const (
	KindUnauthorized       Kind = "unauthorized"
	KindForbidden          Kind = "forbidden"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindValidationFailed   Kind = "validation_failed"
	KindServerError        Kind = "server_error"
	KindServiceUnavailable Kind = "service_unavailable"
	KindNetworkUnreachable Kind = "network_unreachable"
	KindRequestSetupFailed Kind = "request_setup_failed"
)

// Error は正規化済みの失敗を表します。呼び出し側へは表示用メッセージを
// 1 つだけ公開し、トランスポート層の構造は漏らしません。
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf は err が正規化済みの失敗である場合にその種別を返します。
func KindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return "", false
}
