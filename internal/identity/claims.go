package identity

import (
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// parser decodes claims without verifying the signature: signature
// validation is delegated to the upstream gateway / identity provider.
var parser = jwt.NewParser()

// FromToken decodes the bearer credential into a Caller.
func FromToken(raw string) (Caller, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Caller{}, ErrUnauthenticated
	}

	token, _, err := parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return Caller{}, ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Caller{}, ErrUnauthenticated
	}

	caller := Caller{
		Subject:  stringClaim(claims, "sub"),
		Email:    stringClaim(claims, "email"),
		Username: stringClaim(claims, "cognito:username"),
		Roles:    rolesFromClaims(claims),
	}

	return caller, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

// rolesFromClaims extracts the role set. Identity providers are
// inconsistent here: the claim may live under several names and arrive as
// a JSON list, a space-separated string, or a comma-separated string.
// Absent role claims yield an empty set, which denies every operation.
func rolesFromClaims(claims jwt.MapClaims) []string {
	for _, key := range []string{"cognito:groups", "groups", "custom:groups"} {
		raw, ok := claims[key]
		if !ok {
			continue
		}
		if roles := parseRoles(raw); len(roles) > 0 {
			return roles
		}
	}
	return nil
}

func parseRoles(raw interface{}) []string {
	switch v := raw.(type) {
	case []interface{}:
		var roles []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				roles = appendRole(roles, s)
			}
		}
		return roles
	case []string:
		var roles []string
		for _, s := range v {
			roles = appendRole(roles, s)
		}
		return roles
	case string:
		return parseRoleString(v)
	}
	return nil
}

func parseRoleString(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err == nil {
			var roles []string
			for _, s := range list {
				roles = appendRole(roles, s)
			}
			return roles
		}
	}

	sep := " "
	if strings.Contains(raw, ",") {
		sep = ","
	}

	var roles []string
	for _, part := range strings.Split(raw, sep) {
		roles = appendRole(roles, part)
	}
	return roles
}

func appendRole(roles []string, role string) []string {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return roles
	}
	return append(roles, role)
}
