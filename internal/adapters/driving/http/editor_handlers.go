package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/custodia-labs/descriptor-studio/internal/core/domain"
	"github.com/custodia-labs/descriptor-studio/internal/core/ports/driving"
)

// ModeRequest switches the editor view
type ModeRequest struct {
	Mode domain.Mode `json:"mode" example:"json"`
}

// TextRequest replaces the json text buffer
type TextRequest struct {
	Text string `json:"text"`
}

// FieldsRequest applies scalar field edits in order
type FieldsRequest struct {
	Updates []driving.FieldUpdate `json:"updates"`
}

// AddItemResponse carries the new item's key alongside the session
type AddItemResponse struct {
	Key     string                `json:"key" example:"it_a1b2c3d4e5f6"`
	Session *domain.EditorSession `json:"session"`
}

// MappingRequest maps an external response path to an internal field
type MappingRequest struct {
	External string `json:"external" example:"docs.title"`
	Internal string `json:"internal" example:"title"`
}

// HeaderRequest sets one upstream request header
type HeaderRequest struct {
	Name  string `json:"name" example:"Accept"`
	Value string `json:"value" example:"application/json"`
}

// handleOpenSession godoc
// @Summary      Open editor session
// @Description  Start editing a new descriptor, or a copy of the one given. Opens in form mode.
// @Tags         Editor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.OpenSessionRequest  false  "Seed descriptor"
// @Success      201      {object}  domain.EditorSession
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Router       /editor/sessions [post]
func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// an empty body opens a fresh descriptor
	var req driving.OpenSessionRequest
	if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := s.editorService.Open(r.Context(), authCtx.UserID, req)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to open session")
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// handleGetSession godoc
// @Summary      Get editor session
// @Tags         Editor
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  domain.EditorSession
// @Failure      404  {object}  ErrorResponse  "Session not found or expired"
// @Router       /editor/sessions/{id} [get]
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.editorService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, r, err, "failed to get session")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// handleDiscardSession godoc
// @Summary      Discard editor session
// @Tags         Editor
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Router       /editor/sessions/{id} [delete]
func (s *Server) handleDiscardSession(w http.ResponseWriter, r *http.Request) {
	if err := s.editorService.Discard(r.Context(), r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err, "failed to discard session")
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "discarded"})
}

// handleSwitchMode godoc
// @Summary      Switch editor mode
// @Description  Move between form and json. If the json text does not parse, the
// @Description  session stays in json mode and state.error is "invalid_json".
// @Tags         Editor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string       true  "Session ID"
// @Param        request  body      ModeRequest  true  "Target mode"
// @Success      200      {object}  domain.EditorSession
// @Failure      400      {object}  ErrorResponse  "Unknown mode"
// @Failure      404      {object}  ErrorResponse  "Session not found"
// @Router       /editor/sessions/{id}/mode [post]
func (s *Server) handleSwitchMode(w http.ResponseWriter, r *http.Request) {
	var req ModeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.respondSession(w, r, "failed to switch mode")(
		s.editorService.SwitchMode(r.Context(), r.PathValue("id"), req.Mode))
}

// handleSetText godoc
// @Summary      Set json text
// @Description  Replace the raw text buffer. Json mode only; the text is not parsed until the next switch or submit.
// @Tags         Editor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string       true  "Session ID"
// @Param        request  body      TextRequest  true  "Text"
// @Success      200      {object}  domain.EditorSession
// @Failure      409      {object}  ErrorResponse  "Session is in form mode"
// @Router       /editor/sessions/{id}/text [put]
func (s *Server) handleSetText(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.respondSession(w, r, "failed to set text")(
		s.editorService.SetText(r.Context(), r.PathValue("id"), req.Text))
}

// handleSetFields godoc
// @Summary      Set scalar fields
// @Description  Apply form edits to top-level fields. All or nothing. Form mode only.
// @Tags         Editor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string         true  "Session ID"
// @Param        request  body      FieldsRequest  true  "Field updates"
// @Success      200      {object}  domain.EditorSession
// @Failure      400      {object}  ErrorResponse  "Unknown field or wrong input kind"
// @Failure      409      {object}  ErrorResponse  "Session is in json mode"
// @Router       /editor/sessions/{id}/fields [patch]
func (s *Server) handleSetFields(w http.ResponseWriter, r *http.Request) {
	var req FieldsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.respondSession(w, r, "failed to set fields")(
		s.editorService.SetFields(r.Context(), r.PathValue("id"), req.Updates))
}

// handleAddItem godoc
// @Summary      Add list item
// @Description  Append a default filter to api_filters or backend_filters
// @Tags         Editor
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Session ID"
// @Param        list  path      string  true  "api_filters or backend_filters"
// @Success      201   {object}  AddItemResponse
// @Failure      400   {object}  ErrorResponse  "Unknown list"
// @Failure      409   {object}  ErrorResponse  "Session is in json mode"
// @Router       /editor/sessions/{id}/lists/{list}/items [post]
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	session, key, err := s.editorService.AddItem(r.Context(), r.PathValue("id"), r.PathValue("list"))
	if err != nil {
		s.writeServiceError(w, r, err, "failed to add item")
		return
	}
	writeJSON(w, http.StatusCreated, AddItemResponse{Key: key, Session: session})
}

// handleUpdateItem godoc
// @Summary      Update list item
// @Description  Change one field of a filter. item is the item key or its index.
// @Tags         Editor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string              true  "Session ID"
// @Param        list     path      string              true  "api_filters or backend_filters"
// @Param        item     path      string              true  "Item key or index"
// @Param        request  body      driving.ItemUpdate  true  "Field update"
// @Success      200      {object}  domain.EditorSession
// @Failure      404      {object}  ErrorResponse  "No such item"
// @Failure      422      {object}  ErrorResponse  "Index out of range"
// @Router       /editor/sessions/{id}/lists/{list}/items/{item} [patch]
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req driving.ItemUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.respondSession(w, r, "failed to update item")(
		s.editorService.UpdateItem(r.Context(), r.PathValue("id"), r.PathValue("list"), r.PathValue("item"), req))
}

// handleRemoveItem godoc
// @Summary      Remove list item
// @Tags         Editor
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Session ID"
// @Param        list  path      string  true  "api_filters or backend_filters"
// @Param        item  path      string  true  "Item key or index"
// @Success      200   {object}  domain.EditorSession
// @Failure      404   {object}  ErrorResponse  "No such item"
// @Router       /editor/sessions/{id}/lists/{list}/items/{item} [delete]
func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	s.respondSession(w, r, "failed to remove item")(
		s.editorService.RemoveItem(r.Context(), r.PathValue("id"), r.PathValue("list"), r.PathValue("item")))
}

// handleSetMapping godoc
// @Summary      Set response mapping
// @Tags         Editor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string          true  "Session ID"
// @Param        request  body      MappingRequest  true  "Mapping"
// @Success      200      {object}  domain.EditorSession
// @Router       /editor/sessions/{id}/mapping [put]
func (s *Server) handleSetMapping(w http.ResponseWriter, r *http.Request) {
	var req MappingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.respondSession(w, r, "failed to set mapping")(
		s.editorService.SetMapping(r.Context(), r.PathValue("id"), req.External, req.Internal))
}

// handleRemoveMapping godoc
// @Summary      Remove response mapping
// @Tags         Editor
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true  "Session ID"
// @Param        external  query     string  true  "External response path"
// @Success      200       {object}  domain.EditorSession
// @Router       /editor/sessions/{id}/mapping [delete]
func (s *Server) handleRemoveMapping(w http.ResponseWriter, r *http.Request) {
	s.respondSession(w, r, "failed to remove mapping")(
		s.editorService.RemoveMapping(r.Context(), r.PathValue("id"), r.URL.Query().Get("external")))
}

// handleSetHeader godoc
// @Summary      Set request header
// @Tags         Editor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string         true  "Session ID"
// @Param        request  body      HeaderRequest  true  "Header"
// @Success      200      {object}  domain.EditorSession
// @Router       /editor/sessions/{id}/headers [put]
func (s *Server) handleSetHeader(w http.ResponseWriter, r *http.Request) {
	var req HeaderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.respondSession(w, r, "failed to set header")(
		s.editorService.SetHeader(r.Context(), r.PathValue("id"), req.Name, req.Value))
}

// handleRemoveHeader godoc
// @Summary      Remove request header
// @Tags         Editor
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Session ID"
// @Param        name  query     string  true  "Header name"
// @Success      200   {object}  domain.EditorSession
// @Router       /editor/sessions/{id}/headers [delete]
func (s *Server) handleRemoveHeader(w http.ResponseWriter, r *http.Request) {
	s.respondSession(w, r, "failed to remove header")(
		s.editorService.RemoveHeader(r.Context(), r.PathValue("id"), r.URL.Query().Get("name")))
}

// handleSubmit godoc
// @Summary      Submit editor session
// @Description  Build the descriptor from the current mode and create the source.
// @Description  The session is discarded on success and kept on failure.
// @Tags         Editor
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session ID"
// @Success      201  {object}  domain.RedactedSource
// @Failure      404  {object}  ErrorResponse  "Session not found"
// @Failure      409  {object}  ErrorResponse  "A submission is already in flight"
// @Failure      422  {object}  ErrorResponse  "Text does not parse or the descriptor is invalid"
// @Failure      500  {object}  ErrorResponse  "Internal server error"
// @Router       /editor/sessions/{id}/submit [post]
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	source, err := s.editorService.Submit(r.Context(), r.PathValue("id"), authCtx.UserID)
	if err != nil {
		s.writeServiceError(w, r, err, "failed to submit session")
		return
	}
	writeJSON(w, http.StatusCreated, source.Redacted())
}

// respondSession writes the session returned by an editor call, or its error
func (s *Server) respondSession(w http.ResponseWriter, r *http.Request, fallback string) func(*domain.EditorSession, error) {
	return func(session *domain.EditorSession, err error) {
		if err != nil {
			s.writeServiceError(w, r, err, fallback)
			return
		}
		writeJSON(w, http.StatusOK, session)
	}
}
