// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ident

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Byte lengths for the ids handed out by the service
const (
	ParticipantIDBytes = 6
	GroupIDBytes       = 6
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// MustGenerateID is GenerateID for callers that cannot surface an error.
// crypto/rand.Read does not fail on supported platforms.
func MustGenerateID(byteLen int) string {
	id, err := GenerateID(byteLen)
	if err != nil {
		panic(err)
	}
	return id
}

// NewParticipantID returns a fresh opaque participant token
func NewParticipantID() string {
	return MustGenerateID(ParticipantIDBytes)
}

// NewGroupID returns a fresh opaque group token
func NewGroupID() string {
	return MustGenerateID(GroupIDBytes)
}

// NewWorkspaceID returns a random UUID (v4) string for a workspace
func NewWorkspaceID() string {
	return uuid.NewString()
}

// ValidWorkspaceID reports whether id parses as a UUID.
// Used to reject obviously bogus path values before hitting the registry.
func ValidWorkspaceID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
