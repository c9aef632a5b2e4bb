package ocs_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mase3206/nextcloud-scim-connector/pkg/clients/ocs"
)

func TestTranslateSuccessInvariant(t *testing.T) {
	// Code 100 means success even against an empty table.
	status := ocs.ExportTranslate(ocs.StatusTable{}, ocs.StatusOK)

	assert.True(t, status.OK())
	assert.Equal(t, http.StatusOK, status.HTTPStatus)
	assert.Equal(t, "success", status.Message)
}

func TestTranslateTotality(t *testing.T) {
	tables := map[string]ocs.StatusTable{
		"list users":        ocs.ExportListUsersCodes,
		"create user":       ocs.ExportCreateUserCodes,
		"get user":          ocs.ExportGetUserCodes,
		"update user":       ocs.ExportUpdateUserCodes,
		"delete user":       ocs.ExportDeleteUserCodes,
		"add to group":      ocs.ExportAddToGroupCodes,
		"remove from group": ocs.ExportRemoveFromGroupCodes,
		"list groups":       ocs.ExportListGroupsCodes,
		"create group":      ocs.ExportCreateGroupCodes,
		"group members":     ocs.ExportGroupMembersCodes,
		"update group":      ocs.ExportUpdateGroupCodes,
		"delete group":      ocs.ExportDeleteGroupCodes,
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			for _, code := range []int{-1, 0, 1, 99, 999, 12345} {
				if _, known := table[code]; known {
					continue
				}

				status := ocs.ExportTranslate(table, code)
				assert.Equal(t, code, status.Code)
				assert.Equal(t, http.StatusInternalServerError, status.HTTPStatus)
				assert.Equal(t, "Unknown error", status.Message)
				assert.False(t, status.OK())
			}
		})
	}
}

func TestTranslateKnownCodes(t *testing.T) {
	tests := []struct {
		name        string
		table       ocs.StatusTable
		code        int
		wantHTTP    int
		wantMessage string
	}{
		{
			name:        "user already exists",
			table:       ocs.ExportCreateUserCodes,
			code:        102,
			wantHTTP:    http.StatusConflict,
			wantMessage: "user already exists",
		},
		{
			name:        "delete of a missing user",
			table:       ocs.ExportDeleteUserCodes,
			code:        998,
			wantHTTP:    http.StatusNotFound,
			wantMessage: "user does not exist",
		},
		{
			name:        "group creation succeeds as created",
			table:       ocs.ExportCreateGroupCodes,
			code:        100,
			wantHTTP:    http.StatusCreated,
			wantMessage: "successful",
		},
		{
			name:        "group already exists",
			table:       ocs.ExportCreateGroupCodes,
			code:        102,
			wantHTTP:    http.StatusConflict,
			wantMessage: "group already exists",
		},
		{
			name:        "membership add against a missing user",
			table:       ocs.ExportAddToGroupCodes,
			code:        103,
			wantHTTP:    http.StatusNotFound,
			wantMessage: "user does not exist",
		},
		{
			name:        "member fetch against a missing group",
			table:       ocs.ExportGroupMembersCodes,
			code:        404,
			wantHTTP:    http.StatusNotFound,
			wantMessage: "group does not exist",
		},
		{
			name:        "delete of a missing group",
			table:       ocs.ExportDeleteGroupCodes,
			code:        101,
			wantHTTP:    http.StatusNotFound,
			wantMessage: "group does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := ocs.ExportTranslate(tt.table, tt.code)

			assert.Equal(t, tt.code, status.Code)
			assert.Equal(t, tt.wantHTTP, status.HTTPStatus)
			assert.Equal(t, tt.wantMessage, status.Message)
		})
	}
}
