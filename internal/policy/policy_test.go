package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The full (operation, role) matrix from the access-control table.
func TestAllowedMatrix(t *testing.T) {
	matrix := []struct {
		op      Operation
		role    string
		allowed bool
	}{
		{OpList, "viewer", true},
		{OpList, "uploader", true},
		{OpList, "admin", true},
		{OpPresignUpload, "viewer", false},
		{OpPresignUpload, "uploader", true},
		{OpPresignUpload, "admin", true},
		{OpPresignDownload, "viewer", true},
		{OpPresignDownload, "uploader", true},
		{OpPresignDownload, "admin", true},
		{OpRecordDownload, "viewer", true},
		{OpRecordDownload, "uploader", true},
		{OpRecordDownload, "admin", true},
		{OpDelete, "viewer", false},
		{OpDelete, "uploader", false},
		{OpDelete, "admin", true},
	}

	for _, tc := range matrix {
		got := Allowed(tc.op, []string{tc.role})
		assert.Equalf(t, tc.allowed, got, "op=%s role=%s", tc.op, tc.role)
	}
}

func TestAllowedDeniesEmptyRoleSet(t *testing.T) {
	for _, op := range Operations() {
		assert.Falsef(t, Allowed(op, nil), "op=%s must deny empty role set", op)
		assert.Falsef(t, Allowed(op, []string{}), "op=%s must deny empty role set", op)
	}
}

func TestAllowedDeniesUnknownRole(t *testing.T) {
	for _, op := range Operations() {
		assert.Falsef(t, Allowed(op, []string{"auditor", "guest"}), "op=%s", op)
	}
}

func TestAllowedDeniesUnknownOperation(t *testing.T) {
	assert.False(t, Allowed(Operation("purge"), []string{"admin"}))
}

func TestAllowedIsCaseInsensitive(t *testing.T) {
	assert.True(t, Allowed(OpDelete, []string{"Admin"}))
	assert.True(t, Allowed(OpList, []string{" VIEWER "}))
}

func TestAnyMatchingRoleSuffices(t *testing.T) {
	assert.True(t, Allowed(OpDelete, []string{"viewer", "admin"}))
	assert.False(t, Allowed(OpDelete, []string{"viewer", "uploader"}))
}
