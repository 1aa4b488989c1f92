package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/models"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/repository"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/storage"
	"github.com/QuantumMechanyx/erp-admin-hub-sub001/internal/utils"
)

const maxUploadBytes = 32 << 20

type AttachmentHTTP struct {
	attachments repository.AttachmentRepository
	notes       repository.NoteRepository
	blobs       storage.BlobStore
	log         zerolog.Logger
}

func NewAttachmentHTTP(attachments repository.AttachmentRepository, notes repository.NoteRepository, blobs storage.BlobStore, log zerolog.Logger) *AttachmentHTTP {
	return &AttachmentHTTP{attachments: attachments, notes: notes, blobs: blobs, log: log}
}

// POST /api/attachments/upload
// Multipart form {file, noteId, createdBy?}. A placeholder row is written
// first (UPLOADING, empty storage key); the blob upload then flips it to
// AVAILABLE, or to DELETED when the store rejects the bytes.
func (h *AttachmentHTTP) Upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.blobs == nil {
			utils.Error(w, http.StatusInternalServerError, "blob storage is not configured")
			return
		}
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		file, hdr, err := r.FormFile("file")
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "file is required")
			return
		}
		defer file.Close()

		noteID := strings.TrimSpace(r.FormValue("noteId"))
		if noteID == "" {
			utils.Error(w, http.StatusBadRequest, "noteId is required")
			return
		}
		note, err := h.notes.Get(r.Context(), noteID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if note == nil {
			utils.Error(w, http.StatusNotFound, "note not found")
			return
		}

		contentType := hdr.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		att := &models.Attachment{
			NoteID:      noteID,
			FileName:    hdr.Filename,
			ContentType: contentType,
			Size:        hdr.Size,
			CreatedBy:   strings.TrimSpace(r.FormValue("createdBy")),
		}
		if err := h.attachments.Create(r.Context(), att); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}

		key := att.ID + "/" + hdr.Filename
		if err := h.blobs.Upload(r.Context(), key, contentType, file); err != nil {
			h.log.Error().Err(err).Str("attachment", att.ID).Msg("blob upload failed")
			if serr := h.attachments.SetStatus(r.Context(), att.ID, models.AttachmentDeleted); serr != nil {
				h.log.Error().Err(serr).Str("attachment", att.ID).Msg("failed to mark attachment deleted")
			}
			utils.Error(w, http.StatusInternalServerError, "upload failed")
			return
		}
		if err := h.attachments.SetUploaded(r.Context(), att.ID, key); err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		att.StorageKey = key
		att.Status = models.AttachmentAvailable

		utils.JSON(w, http.StatusCreated, att)
	}
}

// GET /api/attachments/{id}/download
// Proxies the stored blob with the original content headers. Anything not
// AVAILABLE is a 404.
func (h *AttachmentHTTP) Download() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		att, err := h.attachments.Get(r.Context(), id)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		if att == nil || att.Status != models.AttachmentAvailable {
			utils.Error(w, http.StatusNotFound, "attachment not found")
			return
		}
		if h.blobs == nil {
			utils.Error(w, http.StatusInternalServerError, "blob storage is not configured")
			return
		}

		body, err := h.blobs.Download(r.Context(), att.StorageKey)
		if err != nil {
			h.log.Error().Err(err).Str("attachment", att.ID).Msg("blob download failed")
			utils.Error(w, http.StatusInternalServerError, "download failed")
			return
		}
		defer body.Close()

		w.Header().Set("Content-Type", att.ContentType)
		w.Header().Set("Content-Length", strconv.FormatInt(att.Size, 10))
		w.Header().Set("Content-Disposition", `attachment; filename="`+att.FileName+`"`)
		_, _ = io.Copy(w, body)
	}
}
