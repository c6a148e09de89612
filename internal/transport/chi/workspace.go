package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type workspaceWriteRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateWorkspace handles POST /api/v1/workspaces.
func (s *Server) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var req workspaceWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "Workspace name is required")
		return
	}

	ws, err := s.workspaces.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, workspaceToDTO(ws))
}

// ListWorkspaces handles GET /api/v1/workspaces.
func (s *Server) ListWorkspaces(w http.ResponseWriter, r *http.Request) {
	wss, err := s.workspaces.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]WorkspaceResponse, len(wss))
	for i := range wss {
		items[i] = workspaceToDTO(wss[i])
	}
	writeJSON(w, http.StatusOK, items)
}

// GetWorkspace handles GET /api/v1/workspaces/{workspaceID}.
func (s *Server) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := s.workspaces.Get(r.Context(), chi.URLParam(r, "workspaceID"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, workspaceToDTO(ws))
}

// UpdateWorkspace handles PUT /api/v1/workspaces/{workspaceID}.
func (s *Server) UpdateWorkspace(w http.ResponseWriter, r *http.Request) {
	var req workspaceWriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	ws, err := s.workspaces.Update(r.Context(), chi.URLParam(r, "workspaceID"), req.Name, req.Description)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, workspaceToDTO(ws))
}

// DeleteWorkspace handles DELETE /api/v1/workspaces/{workspaceID}.
func (s *Server) DeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	if err := s.workspaces.Delete(r.Context(), chi.URLParam(r, "workspaceID")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
