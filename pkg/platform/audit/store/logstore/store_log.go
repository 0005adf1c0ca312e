// Package logstore writes audit events as structured log records.
package logstore

import (
	"context"
	"log/slog"

	audit "partyhub/pkg/platform/audit"
)

type Store struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{logger: logger.With("component", "audit")}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	attrs := []slog.Attr{
		slog.String("category", string(event.Category)),
		slog.String("action", event.Action),
		slog.Time("timestamp", event.Timestamp),
	}
	if event.PartyKind != "" {
		attrs = append(attrs, slog.String("party_kind", event.PartyKind))
	}
	if !event.PartyID.IsNil() {
		attrs = append(attrs, slog.String("party_id", event.PartyID.String()))
	}
	if event.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", event.RequestID))
	}
	if event.ClientIP != "" {
		attrs = append(attrs, slog.String("client_ip", event.ClientIP))
	}
	if event.UserAgent != "" {
		attrs = append(attrs, slog.String("user_agent", event.UserAgent))
	}
	if event.Reason != "" {
		attrs = append(attrs, slog.String("reason", event.Reason))
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "audit event", attrs...)
	return nil
}
