package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"driftwood/internal/middleware"
)

// Attachments larger than this are rejected before touching storage.
const maxUploadBytes = 32 << 20 // 32 MiB

// UploadResponse carries the retrieval URL for an uploaded attachment.
type UploadResponse struct {
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
}

// HandleFileUpload stores a multipart file in object storage keyed by
// its original filename and returns the retrieval URL. Same-named
// uploads overwrite; storage errors propagate with no retry.
func (s *Server) HandleFileUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if _, ok := middleware.GetClaimsFromContext(r.Context()); !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "Invalid multipart request", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "A file field is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		s.Metrics.IncrementRequests()
		fileURL, err := s.Files.Upload(r.Context(), header.Filename, file, header.Size, contentType)
		if err != nil {
			log.Printf("HTTP Handler: upload failed for %q: %v", header.Filename, err)
			s.Metrics.IncrementErrors()
			http.Error(w, "Failed to upload file", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&UploadResponse{
			FileURL:  fileURL,
			FileName: header.Filename,
		})
	}
}
