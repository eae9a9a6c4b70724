// Package httpapi exposes ProfileService over HTTP: multipart registration
// and JSON profile retrieval.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/logging"
	"github.com/dmitrijs2005/profilekeeper/internal/server/models"
	"github.com/dmitrijs2005/profilekeeper/internal/server/services"
)

// pictureFieldAlias is accepted when the canonical field is absent.
const pictureFieldAlias = "picture"

// multipartMemory is how much of a form is held in memory before parts
// spill to temporary files.
const multipartMemory = 8 << 20

// formOverhead leaves room for the text fields and part headers on top of
// the picture itself.
const formOverhead = 1 << 20

type ProfileService interface {
	Register(ctx context.Context, req services.RegisterRequest) (*models.Profile, error)
	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
}

type Handler struct {
	svc            ProfileService
	logger         logging.Logger
	maxPictureSize int64
}

func NewHandler(svc ProfileService, logger logging.Logger, maxPictureSize int64) *Handler {
	return &Handler{svc: svc, logger: logger, maxPictureSize: maxPictureSize}
}

// Register handles POST /register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.maxPictureSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxPictureSize+formOverhead)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.fail(w, r, fmt.Errorf("%w: %v", common.ErrorValidation, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	name, picture, err := readPicture(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	profile, err := h.svc.Register(ctx, services.RegisterRequest{
		FullName:    r.FormValue("full_name"),
		Email:       r.FormValue("email"),
		Password:    r.FormValue("password"),
		Phone:       r.FormValue("phone"),
		PictureName: name,
		Picture:     picture,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// GetUser handles GET /user/{user_id}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "user_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.fail(w, r, fmt.Errorf("%w: invalid user id %q", common.ErrorValidation, raw))
		return
	}

	profile, err := h.svc.GetProfile(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// fail writes the error response. Expected outcomes are logged at info.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	args := []any{"status", status, "error", err.Error()}
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", args...)
	} else {
		h.logger.Info(r.Context(), "request rejected", args...)
	}
	writeError(w, status, msg)
}

func readPicture(r *http.Request) (string, []byte, error) {
	file, header, err := r.FormFile(common.ProfilePictureField)
	if errors.Is(err, http.ErrMissingFile) {
		file, header, err = r.FormFile(pictureFieldAlias)
	}
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil, fmt.Errorf("%w: %s is required", common.ErrorValidation, common.ProfilePictureField)
		}
		return "", nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("%w: read upload: %v", common.ErrorIO, err)
	}

	return header.Filename, content, nil
}
