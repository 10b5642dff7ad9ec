// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tokens

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// SessionTokenLen is the encoded length of a session token.
const SessionTokenLen = 32

var ErrInvalidToken = errors.New("invalid token format")

// GenerateSessionToken creates a random secret identifying one demo session.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	// URL-safe base64; 24 bytes encode without padding
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ValidateSessionToken checks that token looks like a GenerateSessionToken
// result before it is used as a lookup key.
func ValidateSessionToken(token string) error {
	if len(token) != SessionTokenLen {
		return ErrInvalidToken
	}
	for _, c := range token {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return ErrInvalidToken
		}
	}
	return nil
}

// SessionKey derives the store key for a token, so raw tokens are never kept
// in memory longer than a request.
func SessionKey(token, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(token))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// SessionTag is a short, log-safe label for a session.
// Uses HMAC for determinism and base62 encoding for readability
func SessionTag(token, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte("tag:" + token))
	sum := h.Sum(nil)
	return base62Encode(sum[:8])
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z)
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}

// HashIP creates a one-way hash of an IP address for request logs
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits) are enough to correlate requests
	return hex.EncodeToString(sum[:8])
}
