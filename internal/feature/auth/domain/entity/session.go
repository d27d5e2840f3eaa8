package entity

import "time"

// Session はリフレッシュトークン1つ分のログインセッションです。
// IDはトークン値そのもの（64文字の16進文字列）です。
type Session struct {
	ID        string     `json:"id"`
	UserID    uint       `json:"user_id"`
	UserAgent string     `json:"user_agent"`
	IPAddress string     `json:"ip_address"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// IsExpiredAt reports whether the session has expired at t.
func (s *Session) IsExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

// IsRevoked reports whether the session was revoked.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsValidAt reports whether the session can still be used at t.
func (s *Session) IsValidAt(t time.Time) bool {
	return !s.IsExpiredAt(t) && !s.IsRevoked()
}

// IsValid is IsValidAt(time.Now()).
func (s *Session) IsValid() bool {
	return s.IsValidAt(time.Now())
}
