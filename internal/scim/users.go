package scim

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Mase3206/nextcloud-scim-connector/pkg/clients/ocs"
)

// listUsers handles GET /Users.
//
// The directory's list call returns bare IDs only, so the total count and
// the pagination window are computed on the ID list before any per-user
// fetch. Full records are then fetched one by one for the page, and only
// when the projection actually needs more than the ID.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	p := ProjectionFromQuery(r.URL.Query())
	startIndex, count := pageWindow(r)

	ids, status, err := h.directory.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		writeTransportError(w, err)
		return
	}

	if !status.OK() {
		writeBackendError(w, status)
		return
	}

	total := len(ids)
	page := sliceWindow(ids, startIndex, count)

	resources := make([]any, 0, len(page))

	for _, id := range page {
		switch {
		case !p.NeedsUserRecord():
			resources = append(resources, UserResource(&ocs.User{ID: id}, p))

		case p.GroupsOnly():
			groups, groupStatus, err := h.directory.UserGroups(r.Context(), id)
			if err != nil {
				h.logger.Error("failed to fetch user groups during list", "user", id, "error", err)
				writeTransportError(w, err)
				return
			}

			if !groupStatus.OK() {
				h.logger.Warn("skipping user that failed to fetch", "user", id, "statuscode", groupStatus.Code)
				continue
			}

			resources = append(resources, UserResource(&ocs.User{ID: id, Groups: groups}, p))

		default:
			user, userStatus, err := h.directory.GetUser(r.Context(), id)
			if err != nil {
				h.logger.Error("failed to fetch user during list", "user", id, "error", err)
				writeTransportError(w, err)
				return
			}

			if !userStatus.OK() {
				// A user listed a moment ago can vanish before its fetch.
				h.logger.Warn("skipping user that failed to fetch", "user", id, "statuscode", userStatus.Code)
				continue
			}

			resources = append(resources, UserResource(user, p))
		}
	}

	writeJSON(w, http.StatusOK, ListResponse{
		Schemas:      []string{ListResponseSchema},
		TotalResults: total,
		StartIndex:   startIndex,
		ItemsPerPage: len(resources),
		Resources:    resources,
	})
}

// getUser handles GET /Users/{id}. The single-resource get always attaches
// the groups attribute; they ride along in the backend record anyway.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p := ProjectionFromQuery(r.URL.Query()).Including("groups")

	user, status, err := h.directory.GetUser(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get user", "user", id, "error", err)
		writeTransportError(w, err)
		return
	}

	if !status.OK() {
		writeBackendError(w, status)
		return
	}

	writeJSON(w, http.StatusOK, UserResource(user, p))
}

// createUser handles POST /Users. Validation happens before any backend
// call; the created resource is read back from the directory so the
// response reflects what the backend actually stored.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var inbound User
	if err := json.NewDecoder(r.Body).Decode(&inbound); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	fields, err := DirectoryFields(&inbound)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status, err := h.directory.CreateUser(r.Context(), ocs.CreateUserParams{
		ID:          fields.ID,
		DisplayName: fields.DisplayName,
		Email:       fields.Email,
		Groups:      fields.Groups,
	})
	if err != nil {
		h.logger.Error("failed to create user", "user", fields.ID, "error", err)
		writeTransportError(w, err)
		return
	}

	if !status.OK() {
		writeBackendError(w, status)
		return
	}

	// Phone and address are not part of the creation call; set them after.
	for _, extra := range []struct{ field, value string }{
		{"phone", fields.Phone},
		{"address", fields.Address},
	} {
		if extra.value == "" {
			continue
		}

		updateStatus, err := h.directory.UpdateUser(r.Context(), fields.ID, extra.field, extra.value)
		if err != nil {
			h.logger.Error("failed to set field on created user", "user", fields.ID, "field", extra.field, "error", err)
			writeTransportError(w, err)
			return
		}

		if !updateStatus.OK() {
			writeBackendError(w, updateStatus)
			return
		}
	}

	created, getStatus, err := h.directory.GetUser(r.Context(), fields.ID)
	if err != nil {
		h.logger.Error("failed to read back created user", "user", fields.ID, "error", err)
		writeTransportError(w, err)
		return
	}

	if !getStatus.OK() {
		writeBackendError(w, getStatus)
		return
	}

	h.logger.Info("user created", "user", fields.ID)
	writeJSON(w, http.StatusCreated, UserResource(created, NewProjection(nil, nil).Including("groups")))
}

// replaceUser handles PUT /Users/{id}. The directory edits one field per
// call, so the replacement is a sequence of single-field updates computed
// against the current record; the first backend failure stops the sequence.
func (h *Handler) replaceUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var inbound User
	if err := json.NewDecoder(r.Body).Decode(&inbound); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	current, status, err := h.directory.GetUser(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get user for replace", "user", id, "error", err)
		writeTransportError(w, err)
		return
	}

	if !status.OK() {
		writeBackendError(w, status)
		return
	}

	updates := map[string]string{}

	if inbound.DisplayName != nil && *inbound.DisplayName != current.DisplayName {
		updates["displayname"] = *inbound.DisplayName
	}

	if inbound.Emails != nil && len(*inbound.Emails) > 0 {
		if email := (*inbound.Emails)[0].Value; email != current.Email {
			updates["email"] = email
		}
	}

	if inbound.PhoneNumbers != nil && len(*inbound.PhoneNumbers) > 0 {
		if phone := (*inbound.PhoneNumbers)[0].Value; phone != current.Phone {
			updates["phone"] = phone
		}
	}

	if addr := formatAddress(inbound.Addresses); addr != "" && addr != current.Address {
		updates["address"] = addr
	}

	for _, field := range []string{"displayname", "email", "phone", "address"} {
		value, ok := updates[field]
		if !ok {
			continue
		}

		updateStatus, err := h.directory.UpdateUser(r.Context(), id, field, value)
		if err != nil {
			h.logger.Error("failed to update user field", "user", id, "field", field, "error", err)
			writeTransportError(w, err)
			return
		}

		if !updateStatus.OK() {
			writeBackendError(w, updateStatus)
			return
		}
	}

	if inbound.Active != nil && *inbound.Active != current.Enabled {
		var toggleStatus ocs.Status

		if *inbound.Active {
			toggleStatus, err = h.directory.EnableUser(r.Context(), id)
		} else {
			toggleStatus, err = h.directory.DisableUser(r.Context(), id)
		}

		if err != nil {
			h.logger.Error("failed to toggle user", "user", id, "error", err)
			writeTransportError(w, err)
			return
		}

		if !toggleStatus.OK() {
			writeBackendError(w, toggleStatus)
			return
		}
	}

	updated, getStatus, err := h.directory.GetUser(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to read back updated user", "user", id, "error", err)
		writeTransportError(w, err)
		return
	}

	if !getStatus.OK() {
		writeBackendError(w, getStatus)
		return
	}

	writeJSON(w, http.StatusOK, UserResource(updated, NewProjection(nil, nil).Including("groups")))
}

// deleteUser handles DELETE /Users/{id}.
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	status, err := h.directory.DeleteUser(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete user", "user", id, "error", err)
		writeTransportError(w, err)
		return
	}

	if !status.OK() {
		writeBackendError(w, status)
		return
	}

	h.logger.Info("user deleted", "user", id)
	w.WriteHeader(http.StatusNoContent)
}

// pageWindow parses the 1-based startIndex and count query parameters,
// defaulting to the whole list.
func pageWindow(r *http.Request) (startIndex, count int) {
	startIndex = 1

	if s := r.URL.Query().Get("startIndex"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			startIndex = v
		}
	}

	count = -1

	if c := r.URL.Query().Get("count"); c != "" {
		if v, err := strconv.Atoi(c); err == nil && v >= 0 {
			count = v
		}
	}

	return startIndex, count
}

// sliceWindow applies a 1-based offset and count to ids. A negative count
// means "to the end".
func sliceWindow(ids []string, startIndex, count int) []string {
	offset := startIndex - 1
	if offset >= len(ids) {
		return nil
	}

	page := ids[offset:]
	if count >= 0 && count < len(page) {
		page = page[:count]
	}

	return page
}
