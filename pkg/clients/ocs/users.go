package ocs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// SCIM cannot set passwords, but user creation requires one. Nextcloud
// forces a change on first interactive login anyway.
const placeholderPassword = "This is not set by SCIM."

// ErrInvalidField is returned by UpdateUser before any backend call when
// the field is not one the provisioning API can edit.
var ErrInvalidField = errors.New("not a valid field name")

// userUpdateFields are the editable user fields per the provisioning API.
// Password is deliberately absent: password changes are not supported here.
var userUpdateFields = []string{
	"email",
	"quota",
	"displayname",
	"display",
	"phone",
	"address",
	"website",
	"twitter",
}

// Quota is the structured disk quota of a user, when one is set.
type Quota struct {
	Free     int64
	Used     int64
	Total    int64
	Relative float64
}

// User is the backend-native user record. The ID doubles as the login name.
type User struct {
	ID          string
	Email       string
	DisplayName string
	Enabled     bool
	Groups      []string
	Quota       *Quota
	Phone       string
	Address     string
}

// CreateUserParams are the fields user creation accepts. ID, DisplayName,
// and Email are mandatory on the backend side.
type CreateUserParams struct {
	ID          string
	DisplayName string
	Email       string
	Groups      []string
}

// ListUsers returns the IDs of all users.
func (c *Client) ListUsers(ctx context.Context) ([]string, Status, error) {
	env, status, err := c.call(ctx, http.MethodGet, "/users", nil, nil, listUsersCodes)
	if err != nil {
		return nil, Status{}, err
	}

	return stringList(dataMap(env)["users"]), status, nil
}

// GetUser fetches one user record. The payload is only meaningful when the
// status is OK.
func (c *Client) GetUser(ctx context.Context, id string) (*User, Status, error) {
	env, status, err := c.call(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, getUserCodes)
	if err != nil {
		return nil, Status{}, err
	}

	if !status.OK() {
		return nil, status, nil
	}

	data := dataMap(env)

	return &User{
		ID:          stringField(data, "id"),
		Email:       stringField(data, "email"),
		DisplayName: stringField(data, "displayname"),
		Enabled:     boolField(data, "enabled"),
		Groups:      stringList(data["groups"]),
		Quota:       parseQuota(data["quota"]),
		Phone:       stringField(data, "phone"),
		Address:     stringField(data, "address"),
	}, status, nil
}

// CreateUser provisions a new user. Not idempotent: creating the same ID
// twice yields the "user already exists" status.
func (c *Client) CreateUser(ctx context.Context, params CreateUserParams) (Status, error) {
	form := url.Values{
		"userid":      {params.ID},
		"displayName": {params.DisplayName},
		"email":       {params.Email},
		"password":    {placeholderPassword},
		"language":    {"en"},
	}

	for _, g := range params.Groups {
		form.Add("groups[]", g)
	}

	_, status, err := c.call(ctx, http.MethodPost, "/users", nil, form, createUserCodes)

	return status, err
}

// UpdateUser sets one field of a user. The field must be one of
// userUpdateFields; anything else fails before the backend is contacted.
func (c *Client) UpdateUser(ctx context.Context, id, field, value string) (Status, error) {
	valid := false

	for _, f := range userUpdateFields {
		if f == field {
			valid = true
			break
		}
	}

	if !valid {
		return Status{}, fmt.Errorf("%w: %s (accepted: %s)",
			ErrInvalidField, field, strings.Join(userUpdateFields, ", "))
	}

	form := url.Values{"key": {field}, "value": {value}}
	_, status, err := c.call(ctx, http.MethodPut, "/users/"+url.PathEscape(id), nil, form, updateUserCodes)

	return status, err
}

// EnableUser re-enables a disabled user.
func (c *Client) EnableUser(ctx context.Context, id string) (Status, error) {
	_, status, err := c.call(ctx, http.MethodPut, "/users/"+url.PathEscape(id)+"/enable", nil, nil, enableUserCodes)
	return status, err
}

// DisableUser disables a user without deleting it.
func (c *Client) DisableUser(ctx context.Context, id string) (Status, error) {
	_, status, err := c.call(ctx, http.MethodPut, "/users/"+url.PathEscape(id)+"/disable", nil, nil, disableUserCodes)
	return status, err
}

// DeleteUser removes a user permanently.
func (c *Client) DeleteUser(ctx context.Context, id string) (Status, error) {
	_, status, err := c.call(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, deleteUserCodes)
	return status, err
}

// UserGroups returns the groups a user belongs to, in backend order. This
// is the same backend call as GetUser; the groups ride along in the record.
func (c *Client) UserGroups(ctx context.Context, id string) ([]string, Status, error) {
	user, status, err := c.GetUser(ctx, id)
	if err != nil || !status.OK() {
		return nil, status, err
	}

	return user.Groups, status, nil
}

// AddToGroup adds a user to a group.
func (c *Client) AddToGroup(ctx context.Context, userID, groupID string) (Status, error) {
	form := url.Values{"groupid": {groupID}}
	_, status, err := c.call(ctx, http.MethodPost, "/users/"+url.PathEscape(userID)+"/groups", nil, form, addToGroupCodes)

	return status, err
}

// RemoveFromGroup removes a user from a group.
func (c *Client) RemoveFromGroup(ctx context.Context, userID, groupID string) (Status, error) {
	query := url.Values{"groupid": {groupID}}
	_, status, err := c.call(ctx, http.MethodDelete, "/users/"+url.PathEscape(userID)+"/groups", query, nil, removeFromGroupCodes)

	return status, err
}
