package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/tempshare/internal/model"
	"github.com/sakif/tempshare/internal/service"
)

// FileIDHeader must echo the share id on fetch requests. It is an
// anti-scraping guard, not authentication: links pasted into crawlers lack
// the header and get bounced to the index instead of the snippet.
const FileIDHeader = "X-File-ID"

// SnippetHandler exposes the ephemeral snippet store over HTTP.
type SnippetHandler struct {
	svc    *service.SnippetService
	logger *slog.Logger
}

// NewSnippetHandler creates a SnippetHandler.
func NewSnippetHandler(svc *service.SnippetService, logger *slog.Logger) *SnippetHandler {
	return &SnippetHandler{svc: svc, logger: logger}
}

// HandleUpload processes POST /temp-file-upload.
func (h *SnippetHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	var req model.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid upload body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "code, language, title, and expiry time are required",
		})
		return
	}

	resp, err := h.svc.Upload(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleFetch processes GET /file/{shareID}.
//
// The X-File-ID header must match the path id exactly; mismatches are
// redirected to the index rather than answered, so scrapers learn nothing
// about which ids exist.
func (h *SnippetHandler) HandleFetch(w http.ResponseWriter, r *http.Request) {
	shareID := r.PathValue("shareID")

	if header := r.Header.Get(FileIDHeader); header == "" || header != shareID {
		h.logger.Warn("redirecting unauthorized file access",
			slog.String("shareID", shareID),
		)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	snippet, err := h.svc.Fetch(r.Context(), shareID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snippet)
}

// HandleDelete processes DELETE /file/{shareID}.
func (h *SnippetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	shareID := r.PathValue("shareID")

	if err := h.svc.Delete(r.Context(), shareID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted successfully"})
}
