package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"partyhub/internal/party/models"
	dErrors "partyhub/pkg/domain-errors"
	"partyhub/pkg/platform/httputil"
	"partyhub/pkg/requestcontext"
)

// BasePath is the mount point of the party resources.
const BasePath = "/tmf-api/party/v5"

//go:generate mockgen -source=handler.go -destination=mocks/party-mocks.go -package=mocks Service

// Service defines the party operations exposed over HTTP.
type Service interface {
	CreateIndividual(ctx context.Context, payload map[string]any) (*models.Individual, error)
	ListIndividuals(ctx context.Context, filter models.ListFilter) (*models.Page[*models.Individual], error)
	GetIndividual(ctx context.Context, rawID string) (*models.Individual, error)
	UpdateIndividual(ctx context.Context, rawID string, payload map[string]any) (*models.Individual, error)
	DeleteIndividual(ctx context.Context, rawID string) error

	CreateOrganization(ctx context.Context, payload map[string]any) (*models.Organization, error)
	ListOrganizations(ctx context.Context, filter models.ListFilter) (*models.Page[*models.Organization], error)
	GetOrganization(ctx context.Context, rawID string) (*models.Organization, error)
	UpdateOrganization(ctx context.Context, rawID string, payload map[string]any) (*models.Organization, error)
	DeleteOrganization(ctx context.Context, rawID string) error
}

// Handler serves the individual and organization resources.
type Handler struct {
	service Service
	logger  *slog.Logger
	debug   bool
}

type Option func(*Handler)

// WithDebugErrors includes internal error causes in responses.
func WithDebugErrors(enabled bool) Option {
	return func(h *Handler) {
		h.debug = enabled
	}
}

func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{service: service, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the party routes under BasePath.
func (h *Handler) Register(r chi.Router) {
	r.Route(BasePath, func(r chi.Router) {
		r.Route("/individual", func(r chi.Router) {
			r.Post("/", h.handleCreateIndividual)
			r.Get("/", h.handleListIndividuals)
			r.Get("/{id}", h.handleGetIndividual)
			r.Patch("/{id}", h.handleUpdateIndividual)
			r.Delete("/{id}", h.handleDeleteIndividual)
		})
		r.Route("/organization", func(r chi.Router) {
			r.Post("/", h.handleCreateOrganization)
			r.Get("/", h.handleListOrganizations)
			r.Get("/{id}", h.handleGetOrganization)
			r.Patch("/{id}", h.handleUpdateOrganization)
			r.Delete("/{id}", h.handleDeleteOrganization)
		})
	})
}

// Routes lists the registered endpoints for the not-found response.
func Routes() []string {
	var out []string
	for _, resource := range []string{"individual", "organization"} {
		base := BasePath + "/" + resource
		out = append(out,
			"POST "+base,
			"GET "+base,
			"GET "+base+"/:id",
			"PATCH "+base+"/:id",
			"DELETE "+base+"/:id",
		)
	}
	return out
}

// ListResponse is the envelope of a listing.
type ListResponse[R any] struct {
	Data []R      `json:"data"`
	Meta ListMeta `json:"meta"`
}

type ListMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

func newListResponse[R models.Record](page *models.Page[R]) ListResponse[R] {
	return ListResponse[R]{
		Data: page.Items,
		Meta: ListMeta{Total: page.Total, Limit: page.Limit, Offset: page.Offset, Count: len(page.Items)},
	}
}

// decodePayload reads a JSON object body. Anything other than an object is a
// bad request.
func (h *Handler) decodePayload(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	var payload map[string]any
	if err := httputil.DecodeJSON(w, r, &payload); err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	if payload == nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "request body must be a JSON object"))
		return nil, false
	}
	return payload, true
}

// parseFilter reads limit, offset and the filter fields kind supports; keys
// belonging to the other variant are ignored. Non-numeric paging values are
// treated as absent.
func parseFilter(q url.Values, kind models.Kind) models.ListFilter {
	filter := models.ListFilter{
		Status:           models.Status(strings.TrimSpace(q.Get("status"))),
		OrganizationType: models.OrganizationType(strings.TrimSpace(q.Get("organizationType"))),
		GivenName:        strings.TrimSpace(q.Get("givenName")),
		FamilyName:       strings.TrimSpace(q.Get("familyName")),
		Name:             strings.TrimSpace(q.Get("name")),
		Limit:            atoi(q.Get("limit")),
		Offset:           atoi(q.Get("offset")),
	}
	return filter.ScopedTo(kind)
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"method", r.Method,
		"path", r.URL.Path,
		"error", err.Error(),
	}
	if de, ok := dErrors.As(err); ok && de.Code != dErrors.CodeInternal {
		h.logger.WarnContext(ctx, "party request rejected", append(attrs, "code", string(de.Code))...)
	} else {
		h.logger.ErrorContext(ctx, "party request failed", attrs...)
	}
	httputil.WriteError(w, err, httputil.WithDebug(h.debug))
}
