package rest

import (
	"net/http"

	"github.com/dmitrijs2005/realty/internal/catalog"
)

// stats handles GET /api/v1/admin/stats: dashboard figures over every
// listing, active or not.
func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.Summarize(s.deps.Store.All()))
}

type imageRequest struct {
	ContentType string `json:"content_type"`
}

// presignImage handles POST /api/v1/admin/images and returns a presigned
// PUT URL for a listing photo.
func (s *Server) presignImage(w http.ResponseWriter, r *http.Request) {
	if s.deps.Images == nil {
		writeError(w, http.StatusServiceUnavailable, "image storage is not configured")
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req imageRequest
	if err := decodeJSON(body, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	upload, err := s.deps.Images.PresignUpload(r.Context(), req.ContentType)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, upload)
}
