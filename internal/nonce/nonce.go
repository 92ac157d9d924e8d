// Package nonce issues and verifies short-lived anti-forgery tokens bound to
// an action and a user.
package nonce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// tokenLen is the number of hex characters kept from the MAC.
const tokenLen = 20

// Issuer creates and verifies tokens. A token is valid for the tick it was
// issued in and the following one, so its lifetime is between half and one
// full lifetime.
type Issuer struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// NewIssuer builds an Issuer. lifetime below two seconds is raised to two.
func NewIssuer(secret string, lifetime time.Duration) *Issuer {
	if lifetime < 2*time.Second {
		lifetime = 2 * time.Second
	}
	return &Issuer{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Create returns the token for action and userID at the current tick.
func (i *Issuer) Create(action, userID string) string {
	return i.sign(action, userID, i.tick())
}

// Verify reports whether token was issued for action and userID during the
// current or previous tick.
func (i *Issuer) Verify(token, action, userID string) bool {
	if token == "" {
		return false
	}
	tick := i.tick()
	for _, t := range []int64{tick, tick - 1} {
		if hmac.Equal([]byte(token), []byte(i.sign(action, userID, t))) {
			return true
		}
	}
	return false
}

func (i *Issuer) tick() int64 {
	half := int64(i.lifetime / 2)
	return i.now().UnixNano() / half
}

func (i *Issuer) sign(action, userID string, tick int64) string {
	mac := hmac.New(sha256.New, i.secret)
	mac.Write([]byte(action))
	mac.Write([]byte{0})
	mac.Write([]byte(userID))
	mac.Write([]byte{0})
	mac.Write([]byte(strconv.FormatInt(tick, 10)))
	return hex.EncodeToString(mac.Sum(nil))[:tokenLen]
}
