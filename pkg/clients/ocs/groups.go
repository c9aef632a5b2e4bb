package ocs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Group is the backend-native group record. The backend has no separate
// display-name concept, so the ID serves as both.
type Group struct {
	ID      string
	Members []string
}

// groupUpdateFields: the provisioning API can only edit the display name.
var groupUpdateFields = []string{"displayname"}

// ListGroups returns the IDs of all groups, or of groups matching search
// when it is non-empty.
func (c *Client) ListGroups(ctx context.Context, search string) ([]string, Status, error) {
	var query url.Values
	if search != "" {
		query = url.Values{"search": {search}}
	}

	env, status, err := c.call(ctx, http.MethodGet, "/groups", query, nil, listGroupsCodes)
	if err != nil {
		return nil, Status{}, err
	}

	return stringList(dataMap(env)["groups"]), status, nil
}

// GroupMembers returns the user IDs in a group, in backend order. An
// absent member field normalizes to an empty list, never an error.
func (c *Client) GroupMembers(ctx context.Context, id string) ([]string, Status, error) {
	env, status, err := c.call(ctx, http.MethodGet, "/groups/"+url.PathEscape(id), nil, nil, groupMembersCodes)
	if err != nil {
		return nil, Status{}, err
	}

	if !status.OK() {
		return nil, status, nil
	}

	return stringList(dataMap(env)["users"]), status, nil
}

// CreateGroup provisions a new group. Not idempotent: creating the same ID
// twice yields the "group already exists" status.
func (c *Client) CreateGroup(ctx context.Context, id string) (Status, error) {
	form := url.Values{"groupid": {id}}
	_, status, err := c.call(ctx, http.MethodPost, "/groups", nil, form, createGroupCodes)

	return status, err
}

// UpdateGroup sets one field of a group; only the display name is editable.
func (c *Client) UpdateGroup(ctx context.Context, id, field, value string) (Status, error) {
	valid := false

	for _, f := range groupUpdateFields {
		if f == field {
			valid = true
			break
		}
	}

	if !valid {
		return Status{}, fmt.Errorf("%w: %s (accepted: displayname)", ErrInvalidField, field)
	}

	form := url.Values{"key": {field}, "value": {value}}
	_, status, err := c.call(ctx, http.MethodPut, "/groups/"+url.PathEscape(id), nil, form, updateGroupCodes)

	return status, err
}

// DeleteGroup removes a group permanently.
func (c *Client) DeleteGroup(ctx context.Context, id string) (Status, error) {
	_, status, err := c.call(ctx, http.MethodDelete, "/groups/"+url.PathEscape(id), nil, nil, deleteGroupCodes)
	return status, err
}

// ListGroupsWithMembers fetches every group and, one sequential call per
// group, its member list. The backend documents no concurrent-request
// guarantees, so the calls are never parallelized. Processing stops at the
// first group whose member fetch reports a non-success status; groups
// gathered before that point are discarded in favor of the failing status.
func (c *Client) ListGroupsWithMembers(ctx context.Context) ([]Group, Status, error) {
	ids, status, err := c.ListGroups(ctx, "")
	if err != nil || !status.OK() {
		return nil, status, err
	}

	groups := make([]Group, 0, len(ids))

	for _, id := range ids {
		members, memberStatus, err := c.GroupMembers(ctx, id)
		if err != nil {
			return nil, Status{}, err
		}

		if !memberStatus.OK() {
			return nil, memberStatus, nil
		}

		groups = append(groups, Group{ID: id, Members: members})
	}

	return groups, status, nil
}
