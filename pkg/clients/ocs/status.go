package ocs

import "net/http"

// StatusOK is the universal success code of the provisioning API. Every
// operation shares it; all other codes are operation-specific.
const StatusOK = 100

// Status is one backend status translated for the HTTP world. A non-success
// Status is a value, not an error: callers decide what to do with it.
type Status struct {
	Code       int
	HTTPStatus int
	Message    string
}

// OK reports whether the backend considered the operation successful.
func (s Status) OK() bool {
	return s.Code == StatusOK
}

type statusMapping struct {
	httpStatus int
	message    string
}

// statusTable maps one operation's private code space to transport statuses.
// No two operations are guaranteed to agree on what a code means.
type statusTable map[int]statusMapping

// translate is total: the success code is honored before the table is
// consulted, and codes the table does not know degrade to a generic 500.
func (t statusTable) translate(code int) Status {
	if code == StatusOK {
		if m, ok := t[code]; ok {
			return Status{Code: code, HTTPStatus: m.httpStatus, Message: m.message}
		}

		return Status{Code: code, HTTPStatus: http.StatusOK, Message: "success"}
	}

	m, ok := t[code]
	if !ok {
		return Status{Code: code, HTTPStatus: http.StatusInternalServerError, Message: "Unknown error"}
	}

	return Status{Code: code, HTTPStatus: m.httpStatus, Message: m.message}
}

// Code tables reproduced verbatim from the Nextcloud user provisioning API
// documentation. Keep them in sync with the instruction sets for users and
// groups; interoperability depends on the exact mappings.
var (
	listUsersCodes = statusTable{
		100: {200, "success"},
	}

	createUserCodes = statusTable{
		100: {200, "success"},
		101: {400, "invalid argument"},
		102: {409, "user already exists"},
		103: {400, "cannot create sub-admins for admin group"},
		104: {404, "group does not exist"},
		105: {403, "insufficient privileges for group"},
		106: {400, "no group specified (required for sub-admins)"},
		107: {400, "hint exceptions"},
		108: {400, "an email address is required, to send a password link to the user"},
		109: {404, "sub-admin group does not exist"},
		110: {400, "required email address was not provided"},
		111: {400, "could not create non-existing user ID"},
	}

	getUserCodes = statusTable{
		100: {200, "success"},
		404: {404, "user does not exist"},
	}

	updateUserCodes = statusTable{
		100: {200, "success"},
		101: {400, "invalid argument"},
		107: {400, "password policy (hint exception)"},
		112: {400, "setting the password is not supported by the users backend"},
		113: {400, "editing field not allowed or field doesn't exist"},
	}

	disableUserCodes = statusTable{
		100: {200, "successful"},
		101: {500, "failure"},
	}

	enableUserCodes = statusTable{
		100: {200, "successful"},
		101: {500, "failure"},
	}

	deleteUserCodes = statusTable{
		100: {200, "successful"},
		101: {500, "failure"},
		998: {404, "user does not exist"},
	}

	addToGroupCodes = statusTable{
		100: {200, "successful"},
		101: {400, "no group specified"},
		102: {404, "group does not exist"},
		103: {404, "user does not exist"},
		104: {403, "insufficient privileges"},
		105: {500, "failed to add user to group"},
	}

	removeFromGroupCodes = statusTable{
		100: {200, "successful"},
		101: {400, "no group specified"},
		102: {404, "group does not exist"},
		103: {404, "user does not exist"},
		104: {403, "insufficient privileges"},
		105: {500, "failed to remove user from group"},
	}

	listGroupsCodes = statusTable{
		100: {200, "success"},
	}

	createGroupCodes = statusTable{
		100: {201, "successful"},
		101: {400, "invalid input data"},
		102: {409, "group already exists"},
		103: {500, "failed to add the group"},
	}

	groupMembersCodes = statusTable{
		100: {200, "successful"},
		404: {404, "group does not exist"},
	}

	updateGroupCodes = statusTable{
		100: {200, "successful"},
		101: {500, "not supported by backend"},
	}

	deleteGroupCodes = statusTable{
		100: {200, "successful"},
		101: {404, "group does not exist"},
		102: {500, "failed to delete group"},
	}
)
