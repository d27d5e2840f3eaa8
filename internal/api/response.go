// Package api は各フィーチャーのハンドラーが共通で返すレスポンス型を定義します。
package api

// ErrorResponse はすべてのエラーレスポンスのボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は本文を持たない成功レスポンスのボディです。
type MessageResponse struct {
	Message string `json:"message"`
}
