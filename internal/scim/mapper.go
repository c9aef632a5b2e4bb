package scim

import (
	"errors"
	"fmt"

	"github.com/Mase3206/nextcloud-scim-connector/pkg/clients/ocs"
	"github.com/Mase3206/nextcloud-scim-connector/pkg/utils/ptr"
)

// Validation errors for inbound resources. All of them surface as 400
// before any backend call is made.
var (
	ErrMissingUserName    = errors.New("userName is required")
	ErrMissingDisplayName = errors.New("displayName is required")
	ErrMissingEmail       = errors.New("a non-empty emails list is required")
)

// UserResource projects a directory user record into a SCIM user. The id
// and userName are the resource's primary key and are always set; every
// other attribute follows the projection. The directory's single email
// becomes a one-element list with type "other"; no email means an empty
// list, never an omitted field.
func UserResource(u *ocs.User, p Projection) *User {
	res := &User{
		Schemas:  []string{UserSchema},
		ID:       u.ID,
		UserName: u.ID,
	}

	if p.Has("name") {
		res.Name = &Name{Formatted: u.DisplayName}
	}

	if p.Has("displayName") {
		res.DisplayName = ptr.PointTo(u.DisplayName)
	}

	if p.Has("active") {
		res.Active = ptr.PointTo(u.Enabled)
	}

	if p.Has("emails") {
		emails := []Email{}
		if u.Email != "" {
			emails = append(emails, Email{Value: u.Email, Type: "other", Primary: true})
		}

		res.Emails = &emails
	}

	if p.Has("phoneNumbers") {
		phones := []PhoneNumber{}
		if u.Phone != "" {
			phones = append(phones, PhoneNumber{Value: u.Phone})
		}

		res.PhoneNumbers = &phones
	}

	if p.Has("addresses") {
		addresses := []Address{}
		if u.Address != "" {
			addresses = append(addresses, Address{Formatted: u.Address})
		}

		res.Addresses = &addresses
	}

	if p.Explicit("groups") {
		groups := make([]GroupMembership, 0, len(u.Groups))
		for _, g := range u.Groups {
			groups = append(groups, GroupMembership{Value: g, Display: g, Type: "direct"})
		}

		res.Groups = &groups
	}

	return res
}

// DirectoryUserFields is the subset of an inbound SCIM user the directory
// accepts on creation and replacement.
type DirectoryUserFields struct {
	ID          string
	DisplayName string
	Email       string
	Phone       string
	Address     string
	Groups      []string
}

// DirectoryFields extracts the directory-facing fields from an inbound
// SCIM user. userName, displayName, and at least one email are mandatory
// for backend user creation.
func DirectoryFields(u *User) (DirectoryUserFields, error) {
	fields := DirectoryUserFields{}

	if u.UserName == "" {
		return fields, ErrMissingUserName
	}

	if u.DisplayName == nil || *u.DisplayName == "" {
		return fields, ErrMissingDisplayName
	}

	if u.Emails == nil || len(*u.Emails) == 0 || (*u.Emails)[0].Value == "" {
		return fields, ErrMissingEmail
	}

	fields.ID = u.UserName
	fields.DisplayName = *u.DisplayName
	fields.Email = (*u.Emails)[0].Value

	if u.PhoneNumbers != nil && len(*u.PhoneNumbers) > 0 {
		fields.Phone = (*u.PhoneNumbers)[0].Value
	}

	fields.Address = formatAddress(u.Addresses)

	if u.Groups != nil {
		for _, g := range *u.Groups {
			if g.Value != "" {
				fields.Groups = append(fields.Groups, g.Value)
			}
		}
	}

	return fields, nil
}

// formatAddress takes the first address, preferring its formatted form and
// otherwise composing one from the structured sub-fields when all are set.
func formatAddress(addresses *[]Address) string {
	if addresses == nil || len(*addresses) == 0 {
		return ""
	}

	addr := (*addresses)[0]
	if addr.Formatted != "" {
		return addr.Formatted
	}

	if addr.StreetAddress != "" && addr.Locality != "" && addr.Region != "" &&
		addr.PostalCode != "" && addr.Country != "" {
		return fmt.Sprintf("%s, %s, %s %s, %s",
			addr.StreetAddress, addr.Locality, addr.Region, addr.PostalCode, addr.Country)
	}

	return ""
}

// GroupResource projects a directory group into a SCIM group. The backend
// has no separate group display name, so the ID serves as displayName. The
// members list is attached only on an explicit include; a nil member slice
// normalizes to an empty list.
func GroupResource(id string, members []string, p Projection) *Group {
	res := &Group{
		Schemas: []string{GroupSchema},
		ID:      id,
	}

	if p.Has("displayName") {
		res.DisplayName = ptr.PointTo(id)
	}

	if p.Explicit("members") {
		ms := make([]Member, 0, len(members))
		for _, m := range members {
			ms = append(ms, Member{Value: m})
		}

		res.Members = &ms
	}

	return res
}
