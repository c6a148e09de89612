package chi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type kitCreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	AssetIDs    []string `json:"asset_ids"`
}

type kitUpdateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	AssetIDs    []string `json:"asset_ids"` // nil keeps current membership
}

// CreateKit handles POST /api/v1/workspaces/{workspaceID}/kits.
func (s *Server) CreateKit(w http.ResponseWriter, r *http.Request) {
	var req kitCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "Kit name is required")
		return
	}

	k, err := s.kits.Create(
		r.Context(), chi.URLParam(r, "workspaceID"),
		req.Name, req.Description, req.AssetIDs,
	)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, kitToDTO(k))
}

// ListKits handles GET /api/v1/workspaces/{workspaceID}/kits.
func (s *Server) ListKits(w http.ResponseWriter, r *http.Request) {
	kits, err := s.kits.List(r.Context(), chi.URLParam(r, "workspaceID"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]KitResponse, len(kits))
	for i := range kits {
		items[i] = kitToDTO(kits[i])
	}
	writeJSON(w, http.StatusOK, items)
}

// GetKit handles GET /api/v1/kits/{kitID}.
func (s *Server) GetKit(w http.ResponseWriter, r *http.Request) {
	k, err := s.kits.Get(r.Context(), chi.URLParam(r, "kitID"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, kitToDTO(k))
}

// UpdateKit handles PUT /api/v1/kits/{kitID}.
func (s *Server) UpdateKit(w http.ResponseWriter, r *http.Request) {
	var req kitUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	k, err := s.kits.Update(
		r.Context(), chi.URLParam(r, "kitID"),
		req.Name, req.Description, req.AssetIDs,
	)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, kitToDTO(k))
}

// DeleteKit handles DELETE /api/v1/kits/{kitID}.
func (s *Server) DeleteKit(w http.ResponseWriter, r *http.Request) {
	if err := s.kits.Delete(r.Context(), chi.URLParam(r, "kitID")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListKitAssets handles GET /api/v1/kits/{kitID}/assets.
func (s *Server) ListKitAssets(w http.ResponseWriter, r *http.Request) {
	k, err := s.kits.Get(r.Context(), chi.URLParam(r, "kitID"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	assets, err := s.kits.Assets(r.Context(), k)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, assetsToDTO(assets))
}
