package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Token prefixes make provenance self-describing wherever a hash shows up
// in logs or exports.
const (
	citizenTokenPrefix = "CITIZEN_"
	contactTokenPrefix = "CONTACT_"
)

const tokenDigestLength = 16

// AnonymizeCitizen produces one-way tokens for a citizen's name and phone.
// Deterministic: the same name+phone always yields the same tokens, so
// repeat submissions by the same citizen stay correlatable without the
// identity ever being recoverable. The plaintext must be discarded by the
// caller immediately after hashing.
func AnonymizeCitizen(name, phone string) (nameToken, phoneToken string) {
	return citizenTokenPrefix + truncatedDigest(name), contactTokenPrefix + truncatedDigest(phone)
}

// HashIP anonymizes a client IP for audit entries.
func HashIP(ip string) string {
	return truncatedDigest(ip)
}

func truncatedDigest(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:tokenDigestLength]
}
