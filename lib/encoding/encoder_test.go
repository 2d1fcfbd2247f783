package encoding

import (
	"errors"
	"strings"
	"testing"
)

type testToken struct {
	Session string `msgpack:"s"`
	Epoch   int64  `msgpack:"e"`
	Flag    bool   `msgpack:"f,omitempty"`
}

// flip replaces the character at i so the decoded bytes change.
func flip(token string, i int) string {
	c := byte('A')
	if token[i] == 'A' {
		c = 'B'
	}
	return token[:i] + string(c) + token[i+1:]
}

func TestNewEncoder(t *testing.T) {
	for _, key := range [][]byte{
		[]byte("short"),
		[]byte("this-is-a-32-byte-key-for-aes!!!"),
		[]byte("this key is quite a bit longer than thirty two bytes"),
	} {
		if _, err := NewEncoder(key); err != nil {
			t.Fatalf("NewEncoder(%d bytes) failed: %v", len(key), err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	enc, err := NewEncoder([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncoder failed: %v", err)
	}

	for _, sealed := range []bool{false, true} {
		original := testToken{Session: "6f1c2f64-session", Epoch: 42, Flag: true}

		token, err := enc.Encode(original, sealed)
		if err != nil {
			t.Fatalf("Encode(sealed=%v) failed: %v", sealed, err)
		}
		if token == "" {
			t.Fatalf("Encode(sealed=%v) returned empty token", sealed)
		}
		if strings.ContainsAny(token, "+/=") {
			t.Errorf("token %q is not URL safe", token)
		}

		var decoded testToken
		if err := enc.Decode(token, sealed, &decoded); err != nil {
			t.Fatalf("Decode(sealed=%v) failed: %v", sealed, err)
		}
		if decoded != original {
			t.Errorf("sealed=%v: got %+v, want %+v", sealed, decoded, original)
		}
	}
}

func TestSignedTokenHasSignature(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	token, err := enc.Encode(testToken{Session: "abc"}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if strings.Count(token, ".") != 1 {
		t.Errorf("signed token %q should have exactly one separator", token)
	}
}

func TestSignatureVerificationFailure(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	token, err := enc.Encode(testToken{Session: "abc", Epoch: 1}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	tampered := flip(token, len(token)-5)

	var decoded testToken
	err = enc.Decode(tampered, false, &decoded)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("Decode(tampered) error = %v, want ErrSignatureInvalid", err)
	}
}

func TestDecryptionFailure(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	token, err := enc.Encode(testToken{Session: "abc"}, true)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	tampered := flip(token, len(token)/2)

	var decoded testToken
	if err := enc.Decode(tampered, true, &decoded); !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("Decode(tampered) error = %v, want ErrDecryptFailed", err)
	}
}

func TestInvalidFormat(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	tests := []struct {
		name   string
		token  string
		sealed bool
	}{
		{"missing separator", "invalidbase64withoutseparator", false},
		{"bad base64 body", "!!!.AAAA", false},
		{"sealed too short", "AAAA", true},
		{"sealed bad base64", "%%%", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decoded testToken
			if err := enc.Decode(tt.token, tt.sealed, &decoded); !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Decode(%q) error = %v, want ErrInvalidFormat", tt.token, err)
			}
		})
	}
}

func TestDifferentKeysCannotDecode(t *testing.T) {
	enc1, _ := NewEncoder([]byte("key-one"))
	enc2, _ := NewEncoder([]byte("key-two"))

	for _, sealed := range []bool{false, true} {
		token, err := enc1.Encode(testToken{Session: "abc"}, sealed)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}

		var decoded testToken
		if err := enc2.Decode(token, sealed, &decoded); err == nil {
			t.Errorf("sealed=%v: expected error when decoding with a different key", sealed)
		}
	}
}

func TestZeroToken(t *testing.T) {
	enc, _ := NewEncoder([]byte("test-key"))

	token, err := enc.Encode(testToken{}, false)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded := testToken{Session: "stale", Epoch: 9}
	if err := enc.Decode(token, false, &decoded); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Session != "" || decoded.Epoch != 0 || decoded.Flag {
		t.Errorf("zero token decoded as %+v", decoded)
	}
}
