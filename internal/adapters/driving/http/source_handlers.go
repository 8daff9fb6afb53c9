package http

import (
	"net/http"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
)

// handleListSources godoc
// @Summary      List sources
// @Description  All stored source descriptors, oldest first. API keys are redacted.
// @Tags         Sources
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.RedactedSource
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /sources [get]
func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	sources, err := s.sourceService.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err, "failed to list sources")
		return
	}

	out := make([]*domain.RedactedSource, 0, len(sources))
	for _, src := range sources {
		out = append(out, src.Redacted())
	}
	writeJSON(w, http.StatusOK, out)
}

// handleGetSource godoc
// @Summary      Get source
// @Description  Get a source descriptor by ID
// @Tags         Sources
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Source ID"
// @Success      200  {object}  domain.RedactedSource
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "Source not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /sources/{id} [get]
func (s *Server) handleGetSource(w http.ResponseWriter, r *http.Request) {
	source, err := s.sourceService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err, "failed to get source")
		return
	}
	writeJSON(w, http.StatusOK, source.Redacted())
}

// handleCreateSource godoc
// @Summary      Create source
// @Description  Store a source descriptor directly, bypassing the editor (admin only)
// @Tags         Sources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.SourceDescriptor  true  "Source descriptor"
// @Success      201      {object}  domain.RedactedSource
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Failure      403      {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /sources [post]
func (s *Server) handleCreateSource(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var descriptor domain.SourceDescriptor
	if err := decodeJSON(w, r, &descriptor); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	source, err := s.sourceService.Create(r.Context(), authCtx.UserID, descriptor)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to create source")
		return
	}

	writeJSON(w, http.StatusCreated, source.Redacted())
}

// handleDeleteSource godoc
// @Summary      Delete source
// @Description  Delete a source by ID (admin only)
// @Tags         Sources
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Source ID"
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      404  {object}  ErrorResponse  "Source not found"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /sources/{id} [delete]
func (s *Server) handleDeleteSource(w http.ResponseWriter, r *http.Request) {
	if err := s.sourceService.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err, "failed to delete source")
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// handleSourceFilters godoc
// @Summary      Source filters
// @Description  The api and backend filters of one source, with default operators filled in
// @Tags         Sources
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Source ID"
// @Success      200  {object}  domain.SourceFilters
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "Source not found"
// @Router       /sources/{id}/filters [get]
func (s *Server) handleSourceFilters(w http.ResponseWriter, r *http.Request) {
	filters, err := s.sourceService.Filters(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err, "failed to get source filters")
		return
	}
	writeJSON(w, http.StatusOK, filters)
}

// handleFilterTemplates godoc
// @Summary      Backend filter templates
// @Description  Field types and the operators each allows
// @Tags         Filters
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.FilterTemplates
// @Router       /sources/backend-filter-templates [get]
func (s *Server) handleFilterTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sourceService.FilterTemplates())
}

// handleOperatorCatalog godoc
// @Summary      Operator catalog
// @Description  Labelled operators per field type
// @Tags         Filters
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.OperatorCatalog
// @Router       /filters/operators-catalog [get]
func (s *Server) handleOperatorCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sourceService.OperatorCatalog())
}
