// Package otp computes RFC 6238 time-based one-time codes from a secret
// already held as an Entry Field, for callers storing TOTP seeds inside
// Tresor entries (conventionally under a field key like "totp_secret").
// It is a read-only convenience over data already in the store: it adds
// no persisted state and no new invariant to a Store.
package otp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultStep is the RFC 6238 time-step duration.
	DefaultStep = 30 * time.Second
	// DefaultDigits is the number of digits in a generated code.
	DefaultDigits = 6

	secretSize = 20
)

// Secret is a decoded TOTP seed held only for the duration of a code
// computation. Callers that decode one directly (rather than going
// through CurrentCode/Verify) should Zero it when done, the same
// discipline this module applies to every other key-shaped buffer.
type Secret []byte

// Zero overwrites the secret's bytes in place.
func (s Secret) Zero() {
	for i := range s {
		s[i] = 0
	}
}

// GenerateSecret returns a fresh base32-encoded 160-bit TOTP secret,
// suitable for storing as an Entry Field value.
func GenerateSecret(randRead func([]byte) error) (string, error) {
	raw := make(Secret, secretSize)
	if err := randRead(raw); err != nil {
		return "", fmt.Errorf("otp: generate secret: %w", err)
	}
	defer raw.Zero()
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw), nil
}

// CurrentCode computes the code valid at when for the base32 secret held
// in an Entry Field's raw value.
func CurrentCode(secret string, when time.Time) (string, error) {
	raw, err := decodeSecret(secret)
	if err != nil {
		return "", fmt.Errorf("otp: decode secret: %w", err)
	}
	defer raw.Zero()
	return codeAtCounter(raw, counterAt(when)), nil
}

// Verify reports whether code matches the secret at when, tolerating one
// step of clock skew in either direction.
func Verify(code, secret string, when time.Time) bool {
	code = strings.TrimSpace(code)
	if len(code) != DefaultDigits {
		return false
	}
	raw, err := decodeSecret(secret)
	if err != nil {
		return false
	}
	defer raw.Zero()

	base := counterAt(when)
	for _, skew := range [3]int64{0, -1, 1} {
		counter := int64(base) + skew
		if counter < 0 {
			continue
		}
		if codeAtCounter(raw, uint64(counter)) == code {
			return true
		}
	}
	return false
}

// counterAt converts a point in time to its RFC 6238 time-step counter.
func counterAt(when time.Time) uint64 {
	step := int64(DefaultStep / time.Second)
	return uint64(when.Unix() / step)
}

// codeAtCounter is the HOTP (RFC 4226) computation RFC 6238 layers a time
// counter onto: HMAC-SHA1 the counter, dynamically truncate per §5.3, and
// keep the low DefaultDigits decimal digits.
func codeAtCounter(secret Secret, counter uint64) string {
	var counterBytes [8]byte
	binary.BigEndian.PutUint64(counterBytes[:], counter)

	mac := hmac.New(sha1.New, secret)
	mac.Write(counterBytes[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0F
	truncated := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7FFFFFFF
	return fmt.Sprintf("%0*d", DefaultDigits, truncated%1_000_000)
}

func decodeSecret(encoded string) (Secret, error) {
	encoded = strings.ToUpper(strings.TrimSpace(encoded))
	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	return Secret(raw), nil
}
