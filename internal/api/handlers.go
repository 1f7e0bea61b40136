package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"design-studio/backend/internal/constants"
	"design-studio/backend/internal/logging"
	"design-studio/backend/internal/models/dtos"
	"design-studio/backend/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// Root handles GET /api/
func (h *Handlers) Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: constants.MsgHelloWorld})
	}
}

// CreateStatusCheck handles POST /api/status
func (h *Handlers) CreateStatusCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.StatusCheckCreateReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				respondWithError(w, http.StatusUnprocessableEntity, constants.MsgClientNameRequired)
				return
			}
			respondWithError(w, http.StatusBadRequest, constants.MsgInvalidJSON)
			return
		}

		if err := validate.Struct(req); err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, constants.MsgClientNameRequired)
			return
		}

		check, err := h.deps.Services.Status.Create(detached(r), req.ClientName)
		if err != nil {
			logging.Error("Failed to create status check", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, constants.MsgStorageFailure)
			return
		}

		respondWithJSON(w, http.StatusOK, check)
	}
}

// ListStatusChecks handles GET /api/status
func (h *Handlers) ListStatusChecks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks, err := h.deps.Services.Status.List(detached(r))
		if err != nil {
			logging.Error("Failed to list status checks", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, constants.MsgStorageFailure)
			return
		}

		respondWithJSON(w, http.StatusOK, checks)
	}
}

// ListElements handles GET /api/klippy/elements
func (h *Handlers) ListElements() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		limit, ok := parseLimit(q.Get("limit"))
		if !ok {
			respondWithError(w, http.StatusUnprocessableEntity, constants.MsgInvalidLimit)
			return
		}

		sort := q.Get("sort")
		if sort == "" {
			sort = services.DefaultElementsSort
		}

		body := h.deps.Services.Catalog.ListElements(detached(r), limit, q.Get("category"), sort)
		respondWithRawJSON(w, http.StatusOK, body)
	}
}

// SearchElements handles GET /api/klippy/search
func (h *Handlers) SearchElements() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if !q.Has("q") {
			respondWithError(w, http.StatusUnprocessableEntity, constants.MsgQueryRequired)
			return
		}

		limit, ok := parseLimit(q.Get("limit"))
		if !ok {
			respondWithError(w, http.StatusUnprocessableEntity, constants.MsgInvalidLimit)
			return
		}

		body := h.deps.Services.Catalog.SearchElements(detached(r), q.Get("q"), limit, q.Get("category"))
		respondWithRawJSON(w, http.StatusOK, body)
	}
}

// detached keeps the request's values but not its cancellation, so a client
// hanging up does not abort a store write or an upstream call in progress.
func detached(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func parseLimit(raw string) (int, bool) {
	if raw == "" {
		return services.DefaultElementsLimit, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return limit, true
}
