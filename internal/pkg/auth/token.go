package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

const (
	tokenVersion = "rm1"
	defaultTTL   = 12 * time.Hour
)

// Claims identify the operator behind a session token.
type Claims struct {
	OperatorID int64
	ExpiresAt  time.Time
}

// Strategy issues and verifies operator session tokens.
type Strategy interface {
	IssueToken(operatorID int64) (string, error)
	ParseToken(token string) (Claims, error)
}

// Options tune token issuance. Zero values pick defaults.
type Options struct {
	TTL time.Duration
	Now func() time.Time
}

// HMACStrategy signs "rm1.<operator>.<expiry>" with HMAC-SHA256.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	s := &HMACStrategy{secret: []byte(secret), ttl: opts.TTL, now: opts.Now}
	if s.ttl <= 0 {
		s.ttl = defaultTTL
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// IssueToken generates a signed, URL-safe token for the operator.
func (s *HMACStrategy) IssueToken(operatorID int64) (string, error) {
	if operatorID <= 0 {
		return "", fmt.Errorf("issue token: invalid operator id %d", operatorID)
	}
	expires := s.now().Add(s.ttl).Unix()
	payload := fmt.Sprintf("%s.%d.%d", tokenVersion, operatorID, expires)
	return payload + "." + s.sign(payload), nil
}

// ParseToken validates signature and expiry and returns the claims.
func (s *HMACStrategy) ParseToken(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 || parts[0] != tokenVersion {
		return Claims{}, ErrInvalidToken
	}

	payload := strings.Join(parts[:3], ".")
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[3])) {
		return Claims{}, ErrInvalidToken
	}

	operatorID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || operatorID <= 0 {
		return Claims{}, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	claims := Claims{OperatorID: operatorID, ExpiresAt: time.Unix(expires, 0)}
	if !s.now().Before(claims.ExpiresAt) {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
