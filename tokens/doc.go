// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tokens generates and checks the opaque values that identify demo
sessions. There are no accounts; a session token is the only credential.

# Session Tokens

Session tokens are random 24-byte (192-bit) secrets:

	token, err := tokens.GenerateSessionToken()

They are URL-safe base64 without padding (SessionTokenLen characters) and
travel in the X-Session-Token header. ValidateSessionToken rejects anything
of the wrong shape with ErrInvalidToken before a lookup happens.

# Session Keys and Tags

The session store never keys on the raw token:

	key := tokens.SessionKey(token, salt)  // HMAC-SHA256, base64
	tag := tokens.SessionTag(token, salt)  // short base62 label for logs

Both are deterministic for a given token and salt.

# IP Hashing

Request logs carry a salted hash instead of the client address:

	hash := tokens.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package tokens
