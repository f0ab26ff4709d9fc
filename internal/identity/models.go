package identity

import "strings"

// Caller is the authenticated principal derived from the bearer credential.
// It is rebuilt on every request and never persisted.
type Caller struct {
	Subject  string
	Email    string
	Username string
	Roles    []string
}

// Display returns a human-readable identity for audit fields, preferring
// email, then the provider username, then the raw subject.
func (c Caller) Display() string {
	switch {
	case c.Email != "":
		return c.Email
	case c.Username != "":
		return c.Username
	case c.Subject != "":
		return c.Subject
	}
	return "unknown-user"
}

// HasRole reports membership in a single role, case-insensitively.
func (c Caller) HasRole(role string) bool {
	role = strings.ToLower(role)
	for _, r := range c.Roles {
		if strings.ToLower(r) == role {
			return true
		}
	}
	return false
}
