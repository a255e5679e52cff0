package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"passport/internal/passport/metrics"
	"passport/internal/passport/models"
	"passport/pkg/attrs"
	id "passport/pkg/domain"
	dErrors "passport/pkg/domain-errors"
	"passport/pkg/platform/audit"
	"passport/pkg/platform/sentinel"
	"passport/pkg/requestcontext"
)

const tracerName = "passport/internal/passport/service"

type Store interface {
	Save(ctx context.Context, passport *models.Passport) error
	FindByID(ctx context.Context, passportID id.PassportID) (*models.Passport, error)
	DeleteByID(ctx context.Context, passportID id.PassportID) (bool, error)
	Count(ctx context.Context) (int, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// IssueRequest carries the holder attributes for a new passport.
// MiddleName is optional.
type IssueRequest struct {
	FirstName   string
	MiddleName  string
	LastName    string
	DateOfBirth time.Time
	Nationality string
}

// Service orchestrates passport issuance, retrieval, revocation and stamping.
//
// These four operations are the only sanctioned entry points; the store is
// an internal collaborator. Routine failures (invalid data, unknown ID) are
// reported as false and logged, never returned as errors.
type Service struct {
	store          Store
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service around the given store.
func New(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("passport store is required")
	}
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s, nil
}

// Issue validates the request against the context's "now" and stores the
// new passport. On invalid data it returns (nil, false) and stores nothing.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (*models.Passport, bool) {
	start := time.Now()
	defer s.observeIssue(start)
	ctx, span := s.tracer.Start(ctx, "passport.Issue")
	defer span.End()

	passport, err := models.NewBuilder(req.FirstName, req.LastName, req.DateOfBirth, req.Nationality).
		MiddleName(req.MiddleName).
		Build(requestcontext.Now(ctx))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "failed to issue passport due to invalid data",
				"code", string(dErrors.CodeOf(err)), "error", err)
		}
		s.incrementIssueFailures()
		s.logAudit(ctx, audit.EventPassportIssueRejected, id.PassportID{}, "reason", err.Error())
		return nil, false
	}
	span.SetAttributes(attribute.String("passport.id", passport.ID().String()))

	if err := s.store.Save(ctx, passport); err != nil {
		span.SetStatus(codes.Error, err.Error())
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "failed to save passport", "passport_id", passport.ID().String(), "error", err)
		}
		return nil, false
	}

	s.logAudit(ctx, audit.EventPassportIssued, passport.ID(), "nationality", passport.Nationality())
	s.incrementIssued()
	return passport, true
}

// Retrieve returns the stored passport, or false when the ID is unknown.
func (s *Service) Retrieve(ctx context.Context, passportID id.PassportID) (*models.Passport, bool) {
	ctx, span := s.startSpan(ctx, "passport.Retrieve", passportID)
	defer span.End()
	return s.find(ctx, span, passportID)
}

// Revoke removes the passport from the registry. It reports whether a
// passport was actually removed; revoking an unknown or already revoked ID
// is a no-op returning false.
func (s *Service) Revoke(ctx context.Context, passportID id.PassportID) bool {
	ctx, span := s.startSpan(ctx, "passport.Revoke", passportID)
	defer span.End()

	removed, err := s.store.DeleteByID(ctx, passportID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "failed to revoke passport", "passport_id", passportID.String(), "error", err)
		}
		return false
	}
	if !removed {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "attempted to revoke non-existent passport", "passport_id", passportID.String())
		}
		return false
	}

	s.logAudit(ctx, audit.EventPassportRevoked, passportID)
	s.incrementRevoked()
	return true
}

// AddStamp appends a travel stamp to the stored passport in place. The
// record is shared, so every holder of it sees the new stamp immediately.
// A blank stamp leaves the log untouched and still reports true. Returns
// false when the passport is unknown or has been revoked.
func (s *Service) AddStamp(ctx context.Context, passportID id.PassportID, location string) bool {
	ctx, span := s.startSpan(ctx, "passport.AddStamp", passportID)
	defer span.End()

	passport, ok := s.find(ctx, span, passportID)
	if !ok {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "could not add stamp, passport not found", "passport_id", passportID.String())
		}
		return false
	}
	location = strings.TrimSpace(location)
	if err := passport.AddStamp(location); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			if s.logger != nil {
				s.logger.DebugContext(ctx, "ignoring blank stamp", "passport_id", passportID.String())
			}
			return true
		}
		span.SetStatus(codes.Error, err.Error())
		if s.logger != nil {
			s.logger.WarnContext(ctx, "stamp rejected", "passport_id", passportID.String(),
				"code", string(dErrors.CodeOf(err)), "error", err)
		}
		return false
	}

	s.logAudit(ctx, audit.EventStampAdded, passportID, "location", location)
	s.incrementStampsAdded()
	return true
}

// Count returns the number of passports currently held, or zero if the store
// cannot answer.
func (s *Service) Count(ctx context.Context) int {
	n, err := s.store.Count(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "failed to count passports", "error", err)
		}
		return 0
	}
	return n
}

func (s *Service) find(ctx context.Context, span trace.Span, passportID id.PassportID) (*models.Passport, bool) {
	passport, err := s.store.FindByID(ctx, passportID)
	if err == nil {
		return passport, true
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		span.SetStatus(codes.Error, err.Error())
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "failed to load passport", "passport_id", passportID.String(), "error", err)
		}
	}
	return nil, false
}

func (s *Service) startSpan(ctx context.Context, name string, passportID id.PassportID) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("passport.id", passportID.String())))
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, passportID id.PassportID, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if !passportID.IsNil() {
		attributes = append(attributes, "passport_id", passportID.String())
	}
	args := append(attributes, "event", string(event), "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event), args...)
	}
	if s.auditPublisher == nil {
		return
	}
	err := s.auditPublisher.Emit(ctx, audit.Event{
		Timestamp:  requestcontext.Now(ctx),
		PassportID: passportID,
		Action:     string(event),
		Reason:     attrs.ExtractString(attributes, "reason"),
		RequestID:  requestID,
	})
	if err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
	}
}

func (s *Service) observeIssue(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveIssue(start)
	}
}

func (s *Service) incrementIssued() {
	if s.metrics != nil {
		s.metrics.IncrementIssued()
	}
}

func (s *Service) incrementIssueFailures() {
	if s.metrics != nil {
		s.metrics.IncrementIssueFailures()
	}
}

func (s *Service) incrementRevoked() {
	if s.metrics != nil {
		s.metrics.IncrementRevoked()
	}
}

func (s *Service) incrementStampsAdded() {
	if s.metrics != nil {
		s.metrics.IncrementStampsAdded()
	}
}
