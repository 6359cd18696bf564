package rest

import "encoding/json"

// 権威サーバーのレスポンス封筒は {data: [...], count: n} とベア配列・ベア
// オブジェクトの両形式が混在するため、どちらも受け付けて中身を取り出します。

func decodeList(body []byte) (json.RawMessage, int) {
	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Count int             `json:"count"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, envelope.Count
	}
	return body, 0
}

func decodeItem(body []byte) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data
	}
	return body
}
