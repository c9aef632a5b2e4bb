package scim

var (
	ExportValidateMembershipPatch = validateMembershipPatch
	ExportMemberValues            = memberValues
	ExportSliceWindow             = sliceWindow
)
