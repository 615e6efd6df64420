package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/codescanhq/codescan/internal/reader"
)

// handleUpload stores one multipart file in the caller's upload folder.
// Only allow-listed source extensions are accepted, and the file name is
// reduced to its base name so uploads cannot escape the user folder.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return
	}

	if s.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file part in request")
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	if name == "" || name == "." || name == string(filepath.Separator) {
		writeError(w, http.StatusBadRequest, "no selected file")
		return
	}
	if !reader.IsAllowed(name) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported file type: %s", name))
		return
	}

	dir := s.engine.UserDir(uid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("%s uploaded successfully", name),
	})
}
