package scim

import (
	"net/http"

	"github.com/hashicorp/go-hclog"

	"github.com/Mase3206/nextcloud-scim-connector/pkg/clients/ocs"
)

// Handler serves the SCIM v2 API against one directory backend.
type Handler struct {
	directory *ocs.Client
	logger    hclog.Logger
	token     string
}

// NewHandler creates an http.Handler serving all SCIM v2 routes. Routes
// are relative to the mux root; the caller mounts them under the
// configured base path.
func NewHandler(directory *ocs.Client, token string, logger hclog.Logger) http.Handler {
	h := &Handler{
		directory: directory,
		logger:    logger,
		token:     token,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /ServiceProviderConfig", h.withAuth(h.serviceProviderConfig))
	mux.HandleFunc("GET /Schemas", h.withAuth(h.schemas))
	mux.HandleFunc("GET /ResourceTypes", h.withAuth(h.resourceTypes))

	mux.HandleFunc("GET /Users", h.withAuth(h.listUsers))
	mux.HandleFunc("POST /Users", h.withAuth(h.createUser))
	mux.HandleFunc("GET /Users/{id}", h.withAuth(h.getUser))
	mux.HandleFunc("PUT /Users/{id}", h.withAuth(h.replaceUser))
	mux.HandleFunc("DELETE /Users/{id}", h.withAuth(h.deleteUser))

	mux.HandleFunc("GET /Groups", h.withAuth(h.listGroups))
	mux.HandleFunc("POST /Groups", h.withAuth(h.createGroup))
	mux.HandleFunc("GET /Groups/{id}", h.withAuth(h.getGroup))
	mux.HandleFunc("PATCH /Groups/{id}", h.withAuth(h.patchGroup))
	mux.HandleFunc("DELETE /Groups/{id}", h.withAuth(h.deleteGroup))

	return mux
}
