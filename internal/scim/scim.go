// Package scim implements the SCIM v2 REST surface of the connector and
// the mapping between SCIM resources and the directory's native records.
package scim

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Mase3206/nextcloud-scim-connector/pkg/clients/ocs"
)

// SCIM schema URIs.
const (
	UserSchema         = "urn:ietf:params:scim:schemas:core:2.0:User"
	GroupSchema        = "urn:ietf:params:scim:schemas:core:2.0:Group"
	ListResponseSchema = "urn:ietf:params:scim:api:messages:2.0:ListResponse"
	PatchOpSchema      = "urn:ietf:params:scim:api:messages:2.0:PatchOp"
	ErrorSchema        = "urn:ietf:params:scim:api:messages:2.0:Error"
	SPConfigSchema     = "urn:ietf:params:scim:schemas:core:2.0:ServiceProviderConfig"
	ResourceTypeSchema = "urn:ietf:params:scim:schemas:core:2.0:ResourceType"
	SchemaSchema       = "urn:ietf:params:scim:schemas:core:2.0:Schema"
)

const scimContentType = "application/scim+json"

// Error is a SCIM protocol error response.
type Error struct {
	Schemas  []string `json:"schemas"`
	Detail   string   `json:"detail"`
	Status   string   `json:"status"`
	ScimType string   `json:"scimType,omitempty"`
}

// ListResponse is the SCIM list response envelope.
type ListResponse struct {
	Schemas      []string `json:"schemas"`
	TotalResults int      `json:"totalResults"`
	StartIndex   int      `json:"startIndex"`
	ItemsPerPage int      `json:"itemsPerPage"`
	Resources    []any    `json:"Resources"`
}

// Name is the name component of a user resource.
type Name struct {
	Formatted string `json:"formatted,omitempty"`
}

// Email is one entry of a user's emails attribute.
type Email struct {
	Value   string `json:"value"`
	Type    string `json:"type,omitempty"`
	Primary bool   `json:"primary,omitempty"`
}

// PhoneNumber is one entry of a user's phoneNumbers attribute.
type PhoneNumber struct {
	Value string `json:"value"`
}

// Address is one entry of a user's addresses attribute.
type Address struct {
	Formatted     string `json:"formatted,omitempty"`
	StreetAddress string `json:"streetAddress,omitempty"`
	Locality      string `json:"locality,omitempty"`
	Region        string `json:"region,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	Country       string `json:"country,omitempty"`
}

// GroupMembership is one entry of a user's groups attribute.
type GroupMembership struct {
	Value   string `json:"value"`
	Display string `json:"display,omitempty"`
	Type    string `json:"type,omitempty"`
}

// Member is one entry of a group's members attribute.
type Member struct {
	Value   string `json:"value"`
	Display string `json:"display,omitempty"`
}

// User is a SCIM user resource. Multi-valued attributes are pointers to
// slices so that projection can distinguish "not requested" (field absent)
// from "requested but empty" (field present as an empty list).
type User struct {
	Schemas      []string           `json:"schemas"`
	ID           string             `json:"id,omitempty"`
	UserName     string             `json:"userName"`
	Name         *Name              `json:"name,omitempty"`
	DisplayName  *string            `json:"displayName,omitempty"`
	Active       *bool              `json:"active,omitempty"`
	Emails       *[]Email           `json:"emails,omitempty"`
	PhoneNumbers *[]PhoneNumber     `json:"phoneNumbers,omitempty"`
	Addresses    *[]Address         `json:"addresses,omitempty"`
	Groups       *[]GroupMembership `json:"groups,omitempty"`
}

// Group is a SCIM group resource.
type Group struct {
	Schemas     []string  `json:"schemas"`
	ID          string    `json:"id,omitempty"`
	DisplayName *string   `json:"displayName,omitempty"`
	Members     *[]Member `json:"members,omitempty"`
}

// PatchOp is a single SCIM PATCH operation.
type PatchOp struct {
	Op    string `json:"op"`
	Path  string `json:"path,omitempty"`
	Value any    `json:"value,omitempty"`
}

// PatchRequest is a SCIM PATCH request body.
type PatchRequest struct {
	Schemas    []string  `json:"schemas"`
	Operations []PatchOp `json:"Operations"`
}

// writeJSON writes a JSON response with the given status and SCIM content type.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", scimContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a SCIM-formatted error response.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, Error{
		Schemas: []string{ErrorSchema},
		Detail:  detail,
		Status:  strconv.Itoa(status),
	})
}

// writeBackendError maps a non-success backend status onto the response,
// carrying the backend's own code so operators can correlate the failure
// with the directory's diagnostics.
func writeBackendError(w http.ResponseWriter, status ocs.Status) {
	writeError(w, status.HTTPStatus, fmt.Sprintf("%s (backend status %d)", status.Message, status.Code))
}

// writeTransportError reports a failure to reach or decode the backend.
func writeTransportError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadGateway, err.Error())
}
