package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenSource はリクエストへ添付するベアラートークンの供給元です。
// 権威サーバーが 401 を返した場合、Clear が 1 度呼ばれます。
type TokenSource interface {
	Token() string
	Clear()
}

// Client はリモート権威サーバーへの HTTP 呼び出しを包む Transport Client です。
// すべての失敗は *Error へ正規化され、呼び出し側が生のトランスポートエラーを
// 見ることはありません。
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient は Client を生成します。timeout はすべてのリクエストへ一律に
// 適用される接続・応答期限です。
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
}

// Request はリクエストを発行し、成功時はレスポンスボディをそのまま返します。
// body が nil でない場合は JSON としてシリアライズされます。
func (c *Client) Request(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindRequestSetupFailed, Message: fmt.Sprintf("Error setting up request: %v", err)}
		}
		payload = bytes.NewReader(b)
	}

	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, &Error{Kind: KindRequestSetupFailed, Message: fmt.Sprintf("Error setting up request: %v", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetworkUnreachable, Message: "No response from server - Check your connection"}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetworkUnreachable, Message: "No response from server - Check your connection"}
	}

	if resp.StatusCode >= 400 {
		return nil, c.classify(resp.StatusCode, respBody)
	}

	return respBody, nil
}

type errorBody struct {
	Message string              `json:"message"`
	Details map[string][]string `json:"details"`
}

func (c *Client) classify(status int, body []byte) *Error {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)

	switch status {
	case http.StatusBadRequest:
		message := parsed.Message
		if dates := parsed.Details["date"]; len(dates) > 0 {
			message = dates[0]
		}
		if message == "" {
			message = "Bad Request - Invalid data"
		}
		return &Error{Kind: KindValidationFailed, Message: message}
	case http.StatusUnauthorized:
		c.tokens.Clear()
		return &Error{Kind: KindUnauthorized, Message: "Unauthorized - Please login again"}
	case http.StatusForbidden:
		return &Error{Kind: KindForbidden, Message: "Forbidden - Access denied"}
	case http.StatusNotFound:
		return &Error{Kind: KindNotFound, Message: "Not Found - Resource does not exist"}
	case http.StatusConflict:
		message := parsed.Message
		if message == "" {
			message = "Conflict - Data already exists"
		}
		return &Error{Kind: KindConflict, Message: message}
	case http.StatusUnprocessableEntity:
		message := parsed.Message
		if message == "" {
			message = "Validation Error"
		}
		return &Error{Kind: KindValidationFailed, Message: message}
	case http.StatusInternalServerError:
		return &Error{Kind: KindServerError, Message: "Server Error - Please try again later"}
	case http.StatusServiceUnavailable:
		return &Error{Kind: KindServiceUnavailable, Message: "Service Unavailable - Please try again later"}
	default:
		message := parsed.Message
		if message == "" {
			message = fmt.Sprintf("Error: %d", status)
		}
		return &Error{Kind: KindServerError, Message: message}
	}
}
