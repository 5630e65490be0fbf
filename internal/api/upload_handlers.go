package api

import (
	"encoding/json"
	"net/http"

	"github.com/orderdesk/orderdesk-api/internal/uploads"
)

type uploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	FilePath string `json:"file_path"`
	FileURL  string `json:"file_url"`
}

// uploadImageHandler accepts a multipart payment-proof image under the
// "image" form field
func (s *Server) uploadImageHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploads.MaxFileSize); err != nil {
		s.respondWithFailure(w, http.StatusBadRequest, "No image file was sent")
		return
	}

	file, header, err := r.FormFile("image")

	if err != nil {
		s.respondWithFailure(w, http.StatusBadRequest, "No image file was sent")
		return
	}
	defer file.Close()

	stored, err := s.blobStore.SaveUpload(header.Filename, header.Size, file)

	if err != nil {
		s.respondWithError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, uploadResponse{
		Success:  true,
		Message:  "File uploaded successfully",
		FilePath: stored.Name,
		FileURL:  stored.URL,
	})
}

type uploadBase64Request struct {
	ImageData string `json:"image_data"`
	FileName  string `json:"file_name"`
}

// uploadBase64Handler accepts a base64-encoded image, with or without a
// data URL prefix
func (s *Server) uploadBase64Handler(w http.ResponseWriter, r *http.Request) {
	var req uploadBase64Request

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondWithFailure(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	stored, err := s.blobStore.SaveBase64(req.FileName, req.ImageData)

	if err != nil {
		s.respondWithError(w, err)
		return
	}

	s.respondWithJSON(w, http.StatusOK, uploadResponse{
		Success:  true,
		Message:  "Image saved successfully",
		FilePath: stored.Name,
		FileURL:  stored.URL,
	})
}
