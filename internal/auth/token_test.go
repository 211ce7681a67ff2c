package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-session-secret")

// signToken signs an arbitrary payload, valid signature included, so tests
// can exercise payload validation separately from signature validation.
func signToken(t *testing.T, payload sessionKeyClaims) (string, error) {
	t.Helper()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(testSecret)
}

func TestSessionKeyRoundTrip(t *testing.T) {
	key, err := signSessionKey(testSecret, 7, 3)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	userID, sessionID, err := decodeSessionKey(testSecret, key)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if userID != 7 || sessionID != 3 {
		t.Fatalf("expected (7, 3), got (%d, %d)", userID, sessionID)
	}
}

func TestSessionKeyTamperedSignature(t *testing.T) {
	key, err := signSessionKey(testSecret, 7, 3)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	parts := strings.Split(key, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three token segments, got %d", len(parts))
	}

	// Flip one byte of the signature segment.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, _, err := decodeSessionKey(testSecret, tampered); !errors.Is(err, ErrInvalidSessionKey) {
		t.Fatalf("expected ErrInvalidSessionKey, got %v", err)
	}
}

func TestSessionKeyWrongSecret(t *testing.T) {
	key, err := signSessionKey(testSecret, 7, 3)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, _, err := decodeSessionKey([]byte("other-secret"), key); !errors.Is(err, ErrInvalidSessionKey) {
		t.Fatalf("expected ErrInvalidSessionKey, got %v", err)
	}
}

func TestSessionKeyGarbageInput(t *testing.T) {
	for _, input := range []string{
		"",
		"not-a-token",
		"a.b.c",
		"eyJhbGciOiJub25lIn0.IjcgMyI.",
	} {
		if _, _, err := decodeSessionKey(testSecret, input); !errors.Is(err, ErrInvalidSessionKey) {
			t.Fatalf("input %q: expected ErrInvalidSessionKey, got %v", input, err)
		}
	}
}

func TestSessionKeyBadPayloadShape(t *testing.T) {
	for _, payload := range []sessionKeyClaims{
		"7",
		"7 3 9",
		"x y",
		"-1 3",
		"7 0",
	} {
		key, err := signToken(t, payload)
		if err != nil {
			t.Fatalf("sign payload %q: %v", payload, err)
		}
		if _, _, err := decodeSessionKey(testSecret, key); !errors.Is(err, ErrInvalidSessionKey) {
			t.Fatalf("payload %q: expected ErrInvalidSessionKey, got %v", payload, err)
		}
	}
}
