// Copyright (c) 2025 Five Four Ventures.
// All rights reserved.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var ErrInvalidPassword = errors.New("invalid admin password")

// ValidateAdminPassword checks the supplied admin password in constant time.
// Comparing digests rather than the raw strings keeps the comparison
// length-independent.
func ValidateAdminPassword(got, want string) error {
	if want == "" {
		return ErrInvalidPassword
	}
	gotSum := sha256.Sum256([]byte(got))
	wantSum := sha256.Sum256([]byte(want))
	if !hmac.Equal(gotSum[:], wantSum[:]) {
		return ErrInvalidPassword
	}
	return nil
}

// NewResponseID creates the globally unique id for a submitted response.
func NewResponseID() string {
	return uuid.NewString()
}

// NewDraftToken creates the client-held token identifying a draft.
func NewDraftToken() string {
	return uuid.NewString()
}

// NewSessionID creates a time-ordered id for an analytics session, so the
// session log sorts chronologically by id.
func NewSessionID() string {
	return ulid.Make().String()
}

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
