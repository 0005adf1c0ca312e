// Package email holds address helpers shared by normalization and storage.
package email

import (
	"strings"

	pstrings "partyhub/pkg/platform/strings"
)

// Normalize trims and lower-cases an address. Local parts are compared
// case-insensitively; no provider-specific rewriting (dots, plus tags) is done.
func Normalize(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// NormalizeAll normalizes addresses, dropping blanks and duplicates.
func NormalizeAll(addrs []string) []string {
	return pstrings.DedupeAndTrimLower(addrs)
}
