package chi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type sharingLinkCreateRequest struct {
	ExpiresInDays int `json:"expires_in_days"` // 0 means the link never expires
}

// CreateSharingLink handles POST /api/v1/kits/{kitID}/links.
func (s *Server) CreateSharingLink(w http.ResponseWriter, r *http.Request) {
	var req sharingLinkCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.ExpiresInDays < 0 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "expires_in_days must not be negative")
		return
	}

	l, err := s.sharing.Create(r.Context(), chi.URLParam(r, "kitID"), req.ExpiresInDays)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, linkToDTO(l))
}

// ListSharingLinks handles GET /api/v1/kits/{kitID}/links.
func (s *Server) ListSharingLinks(w http.ResponseWriter, r *http.Request) {
	links, err := s.sharing.ListByKit(r.Context(), chi.URLParam(r, "kitID"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := make([]SharingLinkResponse, len(links))
	for i := range links {
		items[i] = linkToDTO(links[i])
	}
	writeJSON(w, http.StatusOK, items)
}

// DeactivateSharingLink handles PATCH /api/v1/sharing-links/{linkID}/deactivate.
func (s *Server) DeactivateSharingLink(w http.ResponseWriter, r *http.Request) {
	l, err := s.sharing.Deactivate(r.Context(), chi.URLParam(r, "linkID"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, linkToDTO(l))
}

// DeleteSharingLink handles DELETE /api/v1/sharing-links/{linkID}.
func (s *Server) DeleteSharingLink(w http.ResponseWriter, r *http.Request) {
	if err := s.sharing.Delete(r.Context(), chi.URLParam(r, "linkID")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetSharedKit handles GET /api/v1/shared/{token}: resolves a sharing token to
// the kit it grants access to.
func (s *Server) GetSharedKit(w http.ResponseWriter, r *http.Request) {
	k, err := s.sharing.Resolve(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, kitToDTO(k))
}
