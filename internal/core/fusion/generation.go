package fusion

import "sync/atomic"

// TokenSource 單調遞增的世代計數器。
// 每次生成發出新 token，偏好調整帶回 token 比對，
// 舊 token 的結果由呼叫端捨棄（last-write-wins 在呼叫端，核心函數本身保持純粹）
type TokenSource struct {
	latest atomic.Int64
}

// Next 發出下一個世代 token
func (t *TokenSource) Next() int64 {
	return t.latest.Add(1)
}

// Latest 目前最新的世代 token
func (t *TokenSource) Latest() int64 {
	return t.latest.Load()
}

// IsLatest 檢查 token 是否仍為最新
func (t *TokenSource) IsLatest(token int64) bool {
	return token == t.latest.Load()
}
