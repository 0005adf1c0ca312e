package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"partyhub/internal/party/metrics"
	"partyhub/internal/party/models"
	id "partyhub/pkg/domain"
	dErrors "partyhub/pkg/domain-errors"
	"partyhub/pkg/email"
	audit "partyhub/pkg/platform/audit"
	"partyhub/pkg/platform/sentinel"
	"partyhub/pkg/requestcontext"
)

// PartyStore persists one party variant.
type PartyStore[R models.Record] interface {
	Create(ctx context.Context, record R) error
	FindByID(ctx context.Context, partyID id.PartyID) (R, error)
	List(ctx context.Context, filter models.ListFilter) ([]R, error)
	Count(ctx context.Context, filter models.ListFilter) (int, error)
	Update(ctx context.Context, partyID id.PartyID, fn func(R) error) (R, error)
	Delete(ctx context.Context, partyID id.PartyID) error
	EmailInUse(ctx context.Context, emails []string, exclude id.PartyID) (bool, error)
}

type IndividualStore = PartyStore[*models.Individual]
type OrganizationStore = PartyStore[*models.Organization]

type Validator interface {
	Check(kind models.Kind, payload map[string]any, mode models.Mode) error
}

type Hasher interface {
	Seal(a *models.AuthenticationPatch) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service runs the create/list/get/update/delete pipeline for individuals
// and organizations.
type Service struct {
	individuals    IndividualStore
	organizations  OrganizationStore
	validator      Validator
	hasher         Hasher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	auditPublisher AuditPublisher
	tracer         trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service.
func New(individuals IndividualStore, organizations OrganizationStore, validator Validator, hasher Hasher, opts ...Option) *Service {
	s := &Service{
		individuals:   individuals,
		organizations: organizations,
		validator:     validator,
		hasher:        hasher,
		logger:        slog.Default(),
		tracer:        otel.Tracer("partyhub/internal/party/service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// variant binds the generic pipeline to one record type and its fragment.
type variant[R models.Record, P any] struct {
	kind      models.Kind
	label     string
	article   string
	store     PartyStore[R]
	normalize func(payload map[string]any, mode models.Mode, now time.Time) (P, error)
	build     func(partyID id.PartyID, patch P, now time.Time) (R, error)
	apply     func(record R, patch P, now time.Time) error
	common    func(patch P) *models.PartyPatch
}

func (v variant[R, P]) notFound() error {
	return dErrors.New(dErrors.CodeNotFound, v.label+" not found")
}

func (v variant[R, P]) invalidID() error {
	return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("Invalid %s ID format", v.kind.Resource()))
}

func (v variant[R, P]) conflict() error {
	return dErrors.New(dErrors.CodeConflict, fmt.Sprintf("%s %s with this email address already exists", v.article, v.kind.Resource()))
}

func create[R models.Record, P any](ctx context.Context, s *Service, v variant[R, P], payload map[string]any) (R, error) {
	var zero R
	ctx, span := s.startSpan(ctx, v.kind, "create")
	defer span.End()
	defer s.observe(v.kind, "create", time.Now())

	if err := s.validate(v.kind, payload, models.ModeCreate); err != nil {
		return zero, s.fail(span, err)
	}
	now := requestcontext.Now(ctx)
	patch, err := v.normalize(payload, models.ModeCreate, now)
	if err != nil {
		return zero, s.fail(span, err)
	}
	if err := s.seal(v.common(patch).Authentication); err != nil {
		return zero, s.fail(span, err)
	}

	record, err := v.build(id.NewPartyID(), patch, now)
	if err != nil {
		return zero, s.fail(span, invariantToValidation(err))
	}

	if addrs := record.Core().EmailAddresses(); len(addrs) > 0 {
		taken, err := v.store.EmailInUse(ctx, addrs, id.PartyID{})
		if err != nil {
			return zero, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check email ownership"))
		}
		if taken {
			s.conflict(ctx, v.kind, "precheck", id.PartyID{})
			return zero, s.fail(span, v.conflict())
		}
	}

	if err := v.store.Create(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			s.conflict(ctx, v.kind, "constraint", id.PartyID{})
			return zero, s.fail(span, v.conflict())
		}
		return zero, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create "+v.kind.Resource()))
	}

	partyID := record.Core().ID
	span.SetAttributes(attribute.String("party.id", partyID.String()))
	s.emit(ctx, audit.EventPartyCreated, v.kind, partyID)
	if s.metrics != nil {
		s.metrics.IncrementCreated(v.kind.Resource())
	}
	s.logger.InfoContext(ctx, "party created",
		"kind", v.kind.Resource(),
		"party_id", partyID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)

	record.Core().Redact()
	return record, nil
}

func list[R models.Record, P any](ctx context.Context, s *Service, v variant[R, P], filter models.ListFilter) (*models.Page[R], error) {
	ctx, span := s.startSpan(ctx, v.kind, "list")
	defer span.End()
	defer s.observe(v.kind, "list", time.Now())

	filter = filter.ScopedTo(v.kind)
	filter.Limit, filter.Offset = coercePage(filter.Limit, filter.Offset)

	var (
		items []R
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = v.store.List(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = v.store.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list "+v.kind.Resource()+"s"))
	}

	if items == nil {
		items = []R{}
	}
	for _, r := range items {
		r.Core().Redact()
	}
	return &models.Page[R]{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func get[R models.Record, P any](ctx context.Context, s *Service, v variant[R, P], rawID string) (R, error) {
	var zero R
	ctx, span := s.startSpan(ctx, v.kind, "get")
	defer span.End()
	defer s.observe(v.kind, "get", time.Now())

	partyID, err := id.ParsePartyID(rawID)
	if err != nil {
		return zero, s.fail(span, v.invalidID())
	}
	record, err := v.store.FindByID(ctx, partyID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return zero, s.fail(span, v.notFound())
		}
		return zero, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load "+v.kind.Resource()))
	}
	record.Core().Redact()
	return record, nil
}

func update[R models.Record, P any](ctx context.Context, s *Service, v variant[R, P], rawID string, payload map[string]any) (R, error) {
	var zero R
	ctx, span := s.startSpan(ctx, v.kind, "update")
	defer span.End()
	defer s.observe(v.kind, "update", time.Now())

	partyID, err := id.ParsePartyID(rawID)
	if err != nil {
		return zero, s.fail(span, v.invalidID())
	}
	span.SetAttributes(attribute.String("party.id", partyID.String()))

	if err := s.validate(v.kind, payload, models.ModeUpdate); err != nil {
		return zero, s.fail(span, err)
	}
	now := requestcontext.Now(ctx)
	patch, err := v.normalize(payload, models.ModeUpdate, now)
	if err != nil {
		return zero, s.fail(span, err)
	}
	common := v.common(patch)
	if err := s.seal(common.Authentication); err != nil {
		return zero, s.fail(span, err)
	}

	if addrs := patchEmails(common); len(addrs) > 0 {
		taken, err := v.store.EmailInUse(ctx, addrs, partyID)
		if err != nil {
			return zero, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check email ownership"))
		}
		if taken {
			s.conflict(ctx, v.kind, "precheck", partyID)
			return zero, s.fail(span, v.conflict())
		}
	}

	record, err := v.store.Update(ctx, partyID, func(r R) error {
		return v.apply(r, patch, now)
	})
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return zero, s.fail(span, v.notFound())
		case errors.Is(err, sentinel.ErrAlreadyUsed):
			s.conflict(ctx, v.kind, "constraint", partyID)
			return zero, s.fail(span, v.conflict())
		case dErrors.HasCode(err, dErrors.CodeInvariantViolation):
			return zero, s.fail(span, invariantToValidation(err))
		}
		return zero, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update "+v.kind.Resource()))
	}

	s.emit(ctx, audit.EventPartyUpdated, v.kind, partyID)
	if s.metrics != nil {
		s.metrics.IncrementUpdated(v.kind.Resource())
	}
	record.Core().Redact()
	return record, nil
}

func remove[R models.Record, P any](ctx context.Context, s *Service, v variant[R, P], rawID string) error {
	ctx, span := s.startSpan(ctx, v.kind, "delete")
	defer span.End()
	defer s.observe(v.kind, "delete", time.Now())

	partyID, err := id.ParsePartyID(rawID)
	if err != nil {
		return s.fail(span, v.invalidID())
	}
	if err := v.store.Delete(ctx, partyID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return s.fail(span, v.notFound())
		}
		return s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete "+v.kind.Resource()))
	}

	s.emit(ctx, audit.EventPartyDeleted, v.kind, partyID)
	if s.metrics != nil {
		s.metrics.IncrementDeleted(v.kind.Resource())
	}
	return nil
}

func (s *Service) validate(kind models.Kind, payload map[string]any, mode models.Mode) error {
	err := s.validator.Check(kind, payload, mode)
	if err != nil && s.metrics != nil && dErrors.HasCode(err, dErrors.CodeValidation) {
		s.metrics.IncrementValidationFailure(kind.Resource(), mode.String())
	}
	return err
}

func (s *Service) seal(a *models.AuthenticationPatch) error {
	if a == nil {
		return nil
	}
	if err := s.hasher.Seal(a); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}
	return nil
}

func (s *Service) conflict(ctx context.Context, kind models.Kind, source string, partyID id.PartyID) {
	if s.metrics != nil {
		s.metrics.IncrementConflict(kind.Resource(), source)
	}
	s.emit(ctx, audit.EventEmailConflict, kind, partyID)
}

// emit publishes an audit event. Failures are logged and never returned.
func (s *Service) emit(ctx context.Context, event audit.AuditEvent, kind models.Kind, partyID id.PartyID) {
	if s.auditPublisher == nil {
		return
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Action:    string(event),
		PartyKind: kind.Resource(),
		PartyID:   partyID,
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", string(event),
			"party_id", partyID.String(),
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
}

func (s *Service) startSpan(ctx context.Context, kind models.Kind, op string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "party."+op, trace.WithAttributes(
		attribute.String("party.kind", kind.Resource()),
	))
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func (s *Service) observe(kind models.Kind, op string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(kind.Resource(), op, start)
	}
}

// coercePage applies the listing defaults: a non-positive limit falls back to
// the default, limits above the maximum are capped and negative offsets
// become zero.
func coercePage(limit, offset int) (int, int) {
	switch {
	case limit <= 0:
		limit = models.DefaultListLimit
	case limit > models.MaxListLimit:
		limit = models.MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// patchEmails returns the addresses a fragment would add to a record.
func patchEmails(p *models.PartyPatch) []string {
	var addrs []string
	if p.ContactMedium != nil {
		for _, cm := range *p.ContactMedium {
			addrs = append(addrs, cm.Characteristic.EmailAddress)
		}
	}
	if p.Email != nil {
		addrs = append(addrs, p.Email.Characteristic.EmailAddress)
	}
	return email.NormalizeAll(addrs)
}

func invariantToValidation(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	return err
}
