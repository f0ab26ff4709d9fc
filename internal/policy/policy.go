// Package policy holds the operation/role authorization table.
package policy

import "strings"

// Operation names a File Service entry point subject to authorization.
type Operation string

const (
	OpList            Operation = "list"
	OpPresignUpload   Operation = "presign-upload"
	OpPresignDownload Operation = "presign-download"
	OpRecordDownload  Operation = "record-download"
	OpDelete          Operation = "delete"
)

// allowedRoles is the single source of truth for access control. Adding a
// role or operation means editing this table only; role names are opaque
// strings everywhere else.
var allowedRoles = map[Operation][]string{
	OpList:            {"viewer", "uploader", "admin"},
	OpPresignUpload:   {"uploader", "admin"},
	OpPresignDownload: {"viewer", "uploader", "admin"},
	OpRecordDownload:  {"viewer", "uploader", "admin"},
	OpDelete:          {"admin"},
}

// Allowed reports whether any of the caller's roles grants the operation.
// An empty role set denies everything; an unknown operation denies.
func Allowed(op Operation, roles []string) bool {
	permitted, ok := allowedRoles[op]
	if !ok {
		return false
	}
	for _, role := range roles {
		role = strings.ToLower(strings.TrimSpace(role))
		for _, allowed := range permitted {
			if role == allowed {
				return true
			}
		}
	}
	return false
}

// Operations returns every operation known to the policy table.
func Operations() []Operation {
	ops := make([]Operation, 0, len(allowedRoles))
	for op := range allowedRoles {
		ops = append(ops, op)
	}
	return ops
}
