package scim

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Mase3206/nextcloud-scim-connector/pkg/clients/ocs"
)

// Patch validation errors; all surface as 400 before any backend call.
var (
	ErrNoOperations    = errors.New("no patch operations provided")
	ErrUnsupportedPath = errors.New("only the members path can be patched")
	ErrMissingValue    = errors.New("patch operation has no value")
	ErrUnsupportedOp   = errors.New("unsupported patch op")
	ErrBadMemberValue  = errors.New("member values must be strings or objects with a value field")
)

// validateMembershipPatch checks a whole PATCH request up front, so that a
// clearly-invalid request never causes partial side effects.
func validateMembershipPatch(req PatchRequest) error {
	if len(req.Operations) == 0 {
		return ErrNoOperations
	}

	for _, op := range req.Operations {
		if op.Path != "members" {
			return fmt.Errorf("%w (got path %q)", ErrUnsupportedPath, op.Path)
		}

		if op.Value == nil {
			return ErrMissingValue
		}

		switch strings.ToLower(op.Op) {
		case "add", "remove":
		default:
			return fmt.Errorf("%w: %q", ErrUnsupportedOp, op.Op)
		}

		ids, err := memberValues(op.Value)
		if err != nil {
			return err
		}

		if len(ids) == 0 {
			return ErrMissingValue
		}
	}

	return nil
}

// memberValues extracts member IDs from a patch operation value. Clients
// send either a list of {value: id} objects, a single such object, a bare
// string, or a list of strings.
func memberValues(v any) ([]string, error) {
	switch val := v.(type) {
	case string:
		return []string{val}, nil
	case map[string]any:
		id, ok := val["value"].(string)
		if !ok || id == "" {
			return nil, ErrBadMemberValue
		}

		return []string{id}, nil
	case []any:
		ids := make([]string, 0, len(val))

		for _, item := range val {
			sub, err := memberValues(item)
			if err != nil {
				return nil, err
			}

			ids = append(ids, sub...)
		}

		return ids, nil
	default:
		return nil, ErrBadMemberValue
	}
}

// applyMembershipPatch executes a validated PATCH request against a group,
// one backend call per member, sequentially and in request order.
// Processing stops at the first member whose call reports a non-success
// status; members already applied stay applied, there is no rollback.
func (h *Handler) applyMembershipPatch(ctx context.Context, groupID string, req PatchRequest) (ocs.Status, error) {
	var status ocs.Status

	for _, op := range req.Operations {
		// Validated upfront; cannot fail here.
		members, _ := memberValues(op.Value)

		for _, member := range members {
			var err error

			switch strings.ToLower(op.Op) {
			case "add":
				status, err = h.directory.AddToGroup(ctx, member, groupID)
			case "remove":
				status, err = h.directory.RemoveFromGroup(ctx, member, groupID)
			}

			if err != nil {
				return ocs.Status{}, err
			}

			if !status.OK() {
				h.logger.Warn("membership patch stopped",
					"group", groupID, "member", member, "op", op.Op, "statuscode", status.Code)
				return status, nil
			}
		}
	}

	return status, nil
}
