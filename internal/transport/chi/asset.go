package chi

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	domasset "github.com/kitvault/kitvault/internal/domain/asset"
)

type assetCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content"`
	AssetType   string `json:"asset_type"`
}

// CreateAsset handles POST /api/v1/workspaces/{workspaceID}/assets.
func (s *Server) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "Asset name is required")
		return
	}

	a, err := s.assets.Create(
		r.Context(), chi.URLParam(r, "workspaceID"),
		req.Name, req.Description, req.Content, req.AssetType,
	)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, assetToDTO(a))
}

// UploadAsset handles POST /api/v1/workspaces/{workspaceID}/assets/upload
// (multipart form with a "file" part and optional "name"/"description").
func (s *Server) UploadAsset(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, domasset.MaxContentSize)
	if err := r.ParseMultipartForm(domasset.MaxContentSize); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "A file part is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Failed to read file: "+err.Error())
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	a, err := s.assets.Upload(
		r.Context(), chi.URLParam(r, "workspaceID"),
		name, r.FormValue("description"), header.Filename, data,
	)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, assetToDTO(a))
}

// ListAssets handles GET /api/v1/workspaces/{workspaceID}/assets.
func (s *Server) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.assets.ListByWorkspace(r.Context(), chi.URLParam(r, "workspaceID"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, assetsToDTO(assets))
}

// GetAsset handles GET /api/v1/assets/{assetID}.
func (s *Server) GetAsset(w http.ResponseWriter, r *http.Request) {
	a, err := s.assets.Get(r.Context(), chi.URLParam(r, "assetID"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, assetToDTO(a))
}

// DownloadAsset handles GET /api/v1/assets/{assetID}/download. Binary uploads
// are stored base64-encoded; plain text is served as-is.
func (s *Server) DownloadAsset(w http.ResponseWriter, r *http.Request) {
	a, err := s.assets.Get(r.Context(), chi.URLParam(r, "assetID"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	data := []byte(a.Content())
	if decoded, decErr := base64.StdEncoding.DecodeString(a.Content()); decErr == nil {
		data = decoded
	}

	mimeType := a.MimeType()
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	filename := a.FilePath()
	if filename == "" {
		filename = a.Name()
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// DeleteAsset handles DELETE /api/v1/assets/{assetID}.
func (s *Server) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := s.assets.Delete(r.Context(), chi.URLParam(r, "assetID")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
