package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"design-studio/backend/internal/constants"
	"design-studio/backend/internal/logging"
	"design-studio/backend/internal/models/dtos"
	"design-studio/backend/internal/services"

	"github.com/go-chi/chi/v5"
)

func respondWithMediaError(w http.ResponseWriter, statusCode int, body dtos.MediaErrorResponse) {
	respondWithJSON(w, statusCode, body)
}

// media returns the media library or answers 503 when it is not configured
func (h *Handlers) media(w http.ResponseWriter) (MediaLibrary, bool) {
	if h.deps.Services.Media == nil {
		respondWithMediaError(w, http.StatusServiceUnavailable, dtos.MediaErrorResponse{Error: constants.MsgMediaNotConfigured})
		return nil, false
	}
	return h.deps.Services.Media, true
}

// pathParam returns a decoded URL parameter; chi routes on the raw path so
// escaped slashes arrive still encoded.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// CheckOrganization handles GET /api/organization/{orgName}/check
func (h *Handlers) CheckOrganization() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		media, ok := h.media(w)
		if !ok {
			return
		}

		org := pathParam(r, "orgName")
		if org == "" {
			respondWithMediaError(w, http.StatusBadRequest, dtos.MediaErrorResponse{Error: constants.MsgOrganizationNameRequired})
			return
		}

		respondWithJSON(w, http.StatusOK, dtos.OrganizationCheckResponse{
			Exists:           media.OrganizationExists(detached(r), org),
			OrganizationName: org,
		})
	}
}

// CreateOrganization handles POST /api/organization/{orgName}/create
func (h *Handlers) CreateOrganization() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		media, ok := h.media(w)
		if !ok {
			return
		}

		org := pathParam(r, "orgName")
		resp, err := media.CreateOrganization(detached(r), org)
		if err == nil {
			respondWithJSON(w, http.StatusOK, resp)
			return
		}

		var validationErr *services.MediaValidationError
		switch {
		case errors.As(err, &validationErr):
			respondWithMediaError(w, http.StatusBadRequest, dtos.MediaErrorResponse{
				Error:         validationErr.Message,
				SuggestedName: validationErr.SuggestedName,
			})
		case errors.Is(err, services.ErrOrganizationExists):
			respondWithMediaError(w, http.StatusBadRequest, dtos.MediaErrorResponse{
				Error:            constants.MsgOrganizationExists,
				Exists:           true,
				OrganizationName: org,
			})
		case errors.Is(err, services.ErrFolderCreateFailed) && resp != nil:
			respondWithMediaError(w, http.StatusInternalServerError, dtos.MediaErrorResponse{
				Error:            constants.MsgOrganizationCreateFailed,
				OrganizationName: resp.OrganizationName,
				Details:          resp.Details,
			})
		default:
			logging.Error("Failed to create organization", "organization", org, "error", err.Error())
			respondWithMediaError(w, http.StatusInternalServerError, dtos.MediaErrorResponse{
				Error:   "Failed to create organization",
				Message: err.Error(),
			})
		}
	}
}

// CreateFolder handles POST /api/folder/create
func (h *Handlers) CreateFolder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		media, ok := h.media(w)
		if !ok {
			return
		}

		var req dtos.FolderCreateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithMediaError(w, http.StatusBadRequest, dtos.MediaErrorResponse{Error: constants.MsgInvalidJSON})
			return
		}

		resp, err := media.CreateFolder(detached(r), req.FolderPath)
		if err != nil {
			var validationErr *services.MediaValidationError
			var createErr *services.FolderCreateError
			switch {
			case errors.As(err, &validationErr):
				respondWithMediaError(w, http.StatusBadRequest, dtos.MediaErrorResponse{Error: validationErr.Message})
			case errors.As(err, &createErr):
				logging.Error("Failed to create folder", "folder", createErr.FolderPath, "error", err.Error())
				respondWithMediaError(w, http.StatusInternalServerError, dtos.MediaErrorResponse{
					Error:      constants.MsgFolderCreateFailed,
					FolderPath: createErr.FolderPath,
					Message:    createErr.Err.Error(),
				})
			default:
				respondWithMediaError(w, http.StatusInternalServerError, dtos.MediaErrorResponse{
					Error:   constants.MsgFolderCreateFailed,
					Message: err.Error(),
				})
			}
			return
		}

		respondWithJSON(w, http.StatusOK, resp)
	}
}

// ListOrganizationImages handles GET /api/organization/{orgName}/images
func (h *Handlers) ListOrganizationImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		media, ok := h.media(w)
		if !ok {
			return
		}

		org := pathParam(r, "orgName")
		resp, err := media.ListImages(detached(r), org, r.URL.Query().Get("type"))
		if err != nil {
			h.mediaFailure(w, err, constants.MsgImagesFetchFailed, "organization", org)
			return
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}

// UploadOrganizationImage handles POST /api/organization/{orgName}/upload
func (h *Handlers) UploadOrganizationImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		media, ok := h.media(w)
		if !ok {
			return
		}

		var req dtos.ImageUploadReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithMediaError(w, http.StatusBadRequest, dtos.MediaErrorResponse{Error: constants.MsgInvalidJSON})
			return
		}

		org := pathParam(r, "orgName")
		resp, err := media.UploadImage(detached(r), org, req)
		if err != nil {
			h.mediaFailure(w, err, constants.MsgImageUploadFailed, "organization", org)
			return
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}

// GetImage handles GET /api/organization/{orgName}/image/{imageId}. The image
// id is a public id and may contain slashes, raw or escaped.
func (h *Handlers) GetImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		media, ok := h.media(w)
		if !ok {
			return
		}

		imageID := pathParam(r, "*")
		resp, err := media.GetImage(detached(r), imageID)
		if err != nil {
			h.mediaFailure(w, err, constants.MsgImageFetchFailed, "image_id", imageID)
			return
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}

// DeleteImage handles DELETE /api/organization/{orgName}/image/{imageId}
func (h *Handlers) DeleteImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		media, ok := h.media(w)
		if !ok {
			return
		}

		imageID := pathParam(r, "*")
		resp, err := media.DeleteImage(detached(r), imageID)
		if err != nil {
			var deleteErr *services.ImageDeleteError
			if errors.As(err, &deleteErr) {
				respondWithMediaError(w, http.StatusInternalServerError, dtos.MediaErrorResponse{
					Error:  constants.MsgImageDeleteFailed,
					Result: deleteErr.Result,
				})
				return
			}
			h.mediaFailure(w, err, constants.MsgImageDeleteFailed, "image_id", imageID)
			return
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}

// mediaFailure answers 400 for validation errors and 500 for everything else
func (h *Handlers) mediaFailure(w http.ResponseWriter, err error, message string, fields ...interface{}) {
	var validationErr *services.MediaValidationError
	if errors.As(err, &validationErr) {
		respondWithMediaError(w, http.StatusBadRequest, dtos.MediaErrorResponse{Error: validationErr.Message})
		return
	}

	logging.Error(message, append(fields, "error", err.Error())...)
	respondWithMediaError(w, http.StatusInternalServerError, dtos.MediaErrorResponse{
		Error:   message,
		Message: err.Error(),
	})
}
