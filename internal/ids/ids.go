// Package ids generates identifiers for team spaces, their nested elements,
// join codes and audit rows.
package ids

import (
	"crypto/rand"
	"encoding/hex"

	googleuuid "github.com/google/uuid"
)

// Identifier prefixes. The hex suffix is 4 random bytes.
const (
	TeamSpacePrefix   = "T"
	CategoryPrefix    = "C"
	TransactionPrefix = "X"

	// LegacyTransactionPrefix marks transactions created before they got
	// their own prefix. They shared the team space prefix and are still
	// accepted as transaction identifiers.
	LegacyTransactionPrefix = TeamSpacePrefix
)

const (
	elementIDBytes = 4
	joinCodeBytes  = 5
)

// NewTeamSpaceID returns a fresh team space identifier such as "T1a2b3c4d".
func NewTeamSpaceID() string { return TeamSpacePrefix + randomHex(elementIDBytes) }

// NewCategoryID returns a fresh spending category identifier.
func NewCategoryID() string { return CategoryPrefix + randomHex(elementIDBytes) }

// NewTransactionID returns a fresh transaction identifier.
func NewTransactionID() string { return TransactionPrefix + randomHex(elementIDBytes) }

// NewJoinCode returns a fresh 10-character hex join code.
func NewJoinCode() string { return randomHex(joinCodeBytes) }

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing is unrecoverable; borrow entropy from a v4 UUID.
		u := googleuuid.New()
		copy(b, u[:])
	}
	return hex.EncodeToString(b)
}

// NewRecordID returns a time-ordered UUIDv7 string for audit rows and
// request IDs.
func NewRecordID() string {
	return googleuuid.Must(googleuuid.NewV7()).String()
}
