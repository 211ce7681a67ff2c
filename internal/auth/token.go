package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSessionKey is returned for any session key that fails signature
// verification or does not decode to a (userId, sessionId) pair. Callers
// treat it as "not authenticated", never as a server fault.
var ErrInvalidSessionKey = errors.New("invalid session key")

// sessionKeyClaims is the token payload: the string "<userId> <sessionId>".
// It deliberately carries no registered claims; validity of the referenced
// session lives in the store, not in the token.
type sessionKeyClaims string

func (sessionKeyClaims) GetExpirationTime() (*jwt.NumericDate, error) { return nil, nil }
func (sessionKeyClaims) GetIssuedAt() (*jwt.NumericDate, error)       { return nil, nil }
func (sessionKeyClaims) GetNotBefore() (*jwt.NumericDate, error)      { return nil, nil }
func (sessionKeyClaims) GetIssuer() (string, error)                   { return "", nil }
func (sessionKeyClaims) GetSubject() (string, error)                  { return "", nil }
func (sessionKeyClaims) GetAudience() (jwt.ClaimStrings, error)       { return nil, nil }

// signSessionKey wraps the (userId, sessionId) pair into a signed session key.
func signSessionKey(secret []byte, userID, sessionID int64) (string, error) {
	payload := sessionKeyClaims(
		strconv.FormatInt(userID, 10) + " " + strconv.FormatInt(sessionID, 10),
	)
	return jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(secret)
}

// decodeSessionKey verifies the signature and extracts the pair. Every
// malformed, tampered or foreign input maps to ErrInvalidSessionKey.
func decodeSessionKey(secret []byte, sessionKey string) (userID, sessionID int64, err error) {
	var payload sessionKeyClaims
	token, err := jwt.ParseWithClaims(
		sessionKey,
		&payload,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return 0, 0, ErrInvalidSessionKey
	}

	parts := strings.Split(string(payload), " ")
	if len(parts) != 2 {
		return 0, 0, ErrInvalidSessionKey
	}
	userID, err = strconv.ParseInt(parts[0], 10, 64)
	if err != nil || userID <= 0 {
		return 0, 0, ErrInvalidSessionKey
	}
	sessionID, err = strconv.ParseInt(parts[1], 10, 64)
	if err != nil || sessionID <= 0 {
		return 0, 0, ErrInvalidSessionKey
	}

	return userID, sessionID, nil
}
