// Package normalize provides canonical forms for user-entered identity
// fields before they are stored or compared.
package normalize

import "strings"

// Email trims whitespace and lowercases an email address. Email is the
// natural key for most of the platform, so every write and lookup must go
// through the same form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims whitespace and collapses interior runs of spaces.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Role lowercases and trims a role value for comparison.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
