package scim

import (
	"encoding/json"
	"net/http"

	"github.com/Mase3206/nextcloud-scim-connector/pkg/clients/ocs"
)

// listGroups handles GET /Groups. Member lists cost one extra backend call
// per group, so they are fetched only when the projection explicitly asks
// for them.
func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	p := ProjectionFromQuery(r.URL.Query())
	startIndex, count := pageWindow(r)

	ids, status, err := h.directory.ListGroups(r.Context(), "")
	if err != nil {
		h.logger.Error("failed to list groups", "error", err)
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
		var members []string

		if p.Explicit("members") {
			var memberStatus ocs.Status

			members, memberStatus, err = h.directory.GroupMembers(r.Context(), id)
			if err != nil {
				h.logger.Error("failed to fetch group members during list", "group", id, "error", err)
				writeTransportError(w, err)
				return
			}

			if !memberStatus.OK() {
				writeBackendError(w, memberStatus)
				return
			}
		}

		resources = append(resources, GroupResource(id, members, p))
	}

	writeJSON(w, http.StatusOK, ListResponse{
		Schemas:      []string{ListResponseSchema},
		TotalResults: total,
		StartIndex:   startIndex,
		ItemsPerPage: len(resources),
		Resources:    resources,
	})
}

// getGroup handles GET /Groups/{id}. The member fetch doubles as the
// existence check, so the single-resource get always attaches members.
func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	p := ProjectionFromQuery(r.URL.Query()).Including("members")

	members, status, err := h.directory.GroupMembers(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get group", "group", id, "error", err)
		writeTransportError(w, err)
		return
	}

	if !status.OK() {
		writeBackendError(w, status)
		return
	}

	writeJSON(w, http.StatusOK, GroupResource(id, members, p))
}

// createGroup handles POST /Groups. The directory has no separate group
// display name, so the inbound displayName becomes the group ID.
func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	var inbound Group
	if err := json.NewDecoder(r.Body).Decode(&inbound); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if inbound.DisplayName == nil || *inbound.DisplayName == "" {
		writeError(w, http.StatusBadRequest, ErrMissingDisplayName.Error())
		return
	}

	id := *inbound.DisplayName

	status, err := h.directory.CreateGroup(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to create group", "group", id, "error", err)
		writeTransportError(w, err)
		return
	}

	if !status.OK() {
		writeBackendError(w, status)
		return
	}

	h.logger.Info("group created", "group", id)
	writeJSON(w, status.HTTPStatus, GroupResource(id, nil, NewProjection(nil, nil).Including("members")))
}

// deleteGroup handles DELETE /Groups/{id}.
func (h *Handler) deleteGroup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	status, err := h.directory.DeleteGroup(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete group", "group", id, "error", err)
		writeTransportError(w, err)
		return
	}

	if !status.OK() {
		writeBackendError(w, status)
		return
	}

	h.logger.Info("group deleted", "group", id)
	w.WriteHeader(http.StatusNoContent)
}

// patchGroup handles PATCH /Groups/{id}. Only membership patches are
// supported; the whole request validates before any backend call, executes
// sequentially, and on success the response carries the re-fetched member
// list as the authoritative post-patch state.
func (h *Handler) patchGroup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req PatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := validateMembershipPatch(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status, err := h.applyMembershipPatch(r.Context(), id, req)
	if err != nil {
		h.logger.Error("failed to apply membership patch", "group", id, "error", err)
		writeTransportError(w, err)
		return
	}

	if !status.OK() {
		writeBackendError(w, status)
		return
	}

	members, memberStatus, err := h.directory.GroupMembers(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to read back group after patch", "group", id, "error", err)
		writeTransportError(w, err)
		return
	}

	if !memberStatus.OK() {
		writeBackendError(w, memberStatus)
		return
	}

	writeJSON(w, http.StatusOK, GroupResource(id, members, NewProjection(nil, nil).Including("members")))
}
