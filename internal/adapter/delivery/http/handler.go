package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/tinyurl-service/internal/entity"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

type urlUseCase interface {
	CreateShortURI(originalURL, customShortURI string) (string, error)
	GetLongURL(shortURI string) (string, error)
	DeleteShortURI(shortURI string) error
	GetClickCount(shortURI string) (uint64, error)
	GetTotalItemsNumber() int
}

type urlHandler struct {
	useCase  urlUseCase
	validate *validator.Validate
}

func newURLHandler(useCase urlUseCase, validate *validator.Validate) *urlHandler {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &urlHandler{
		useCase:  useCase,
		validate: validate,
	}
}

// renderError maps a use case error to its HTTP status and body.
// Only unexpected errors and exhausted limits are attached to the request log.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidArgument):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidArgumentResponse)
	case errors.Is(err, entity.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, urlNotFoundResponse)
	case errors.Is(err, entity.ErrAlreadyExists):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, shortURIExistsResponse)
	case errors.Is(err, entity.ErrCapacityExceeded):
		httplog.LogEntrySetField(r.Context(), "err", slog.StringValue(err.Error()))

		render.Status(r, http.StatusInsufficientStorage)
		render.JSON(w, r, capacityExceededResponse)
	case errors.Is(err, entity.ErrResourceExhausted):
		httplog.LogEntrySetField(r.Context(), "err", slog.StringValue(err.Error()))

		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, resourceExhaustedResponse)
	default:
		httplog.LogEntrySetField(r.Context(), "err", slog.StringValue(err.Error()))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
	}
}

func (h *urlHandler) shortenURL(w http.ResponseWriter, r *http.Request) {
	var req shortenRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, emptyRequestBodyResponse)
			return
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return
	}

	shortURI, err := h.useCase.CreateShortURI(req.OriginalURL, req.CustomShortURI)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, urlResponse{
		ShortURI:    shortURI,
		OriginalURL: req.OriginalURL,
	})
}

func (h *urlHandler) resolveShortURI(w http.ResponseWriter, r *http.Request) {
	shortURI := chi.URLParam(r, "shortURI")

	originalURL, err := h.useCase.GetLongURL(shortURI)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, urlResponse{
		ShortURI:    shortURI,
		OriginalURL: originalURL,
	})
}

func (h *urlHandler) redirect(w http.ResponseWriter, r *http.Request) {
	shortURI := chi.URLParam(r, "shortURI")

	originalURL, err := h.useCase.GetLongURL(shortURI)
	if err != nil {
		renderError(w, r, err)
		return
	}

	http.Redirect(w, r, originalURL, http.StatusFound)
}

func (h *urlHandler) deleteShortURI(w http.ResponseWriter, r *http.Request) {
	shortURI := chi.URLParam(r, "shortURI")

	if err := h.useCase.DeleteShortURI(shortURI); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *urlHandler) getURLStats(w http.ResponseWriter, r *http.Request) {
	shortURI := chi.URLParam(r, "shortURI")

	clickCount, err := h.useCase.GetClickCount(shortURI)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, urlStatsResponse{
		ShortURI: shortURI,
		Stats: urlStats{
			ClickCount: clickCount,
		},
	})
}

func (h *urlHandler) getTotalStats(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, totalStatsResponse{
		TotalItems: h.useCase.GetTotalItemsNumber(),
	})
}
