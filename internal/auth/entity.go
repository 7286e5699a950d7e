// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

// Session is a decoded auth_token.
type Session struct {
	ID        string
	UserID    int64
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Remaining is how long the token stays valid; zero once expired.
func (s *Session) Remaining() time.Duration {
	if s.IsExpired() {
		return 0
	}
	return time.Until(s.ExpiresAt)
}
