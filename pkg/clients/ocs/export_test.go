package ocs

var (
	ExportDecodeEnvelope = decodeEnvelope
	ExportUnwrapElements = unwrapElements
)

type StatusTable = statusTable

var (
	ExportListUsersCodes       = listUsersCodes
	ExportCreateUserCodes      = createUserCodes
	ExportGetUserCodes         = getUserCodes
	ExportUpdateUserCodes      = updateUserCodes
	ExportDeleteUserCodes      = deleteUserCodes
	ExportAddToGroupCodes      = addToGroupCodes
	ExportRemoveFromGroupCodes = removeFromGroupCodes
	ExportListGroupsCodes      = listGroupsCodes
	ExportCreateGroupCodes     = createGroupCodes
	ExportGroupMembersCodes    = groupMembersCodes
	ExportUpdateGroupCodes     = updateGroupCodes
	ExportDeleteGroupCodes     = deleteGroupCodes
)

func ExportTranslate(t StatusTable, code int) Status {
	return t.translate(code)
}
