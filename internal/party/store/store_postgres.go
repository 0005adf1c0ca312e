package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"partyhub/internal/party/models"
	id "partyhub/pkg/domain"
	dErrors "partyhub/pkg/domain-errors"
	"partyhub/pkg/platform/sentinel"
	"partyhub/pkg/platform/tx"
)

// Schema creates the party tables. It is idempotent.
//
//go:embed schema.sql
var Schema string

const uniqueViolation = "23505"

// PostgresStore persists one variant's records in PostgreSQL. The document
// column holds the canonical JSON; searchable fields are promoted to columns
// and the credential hash lives in its own column that read paths never
// select.
type PostgresStore[R models.Record] struct {
	db        *sql.DB
	kind      models.Kind
	newRecord NewRecordFunc[R]
}

// NewPostgres constructs a PostgreSQL-backed party store.
func NewPostgres[R models.Record](db *sql.DB, kind models.Kind, newRecord NewRecordFunc[R]) *PostgresStore[R] {
	return &PostgresStore[R]{db: db, kind: kind, newRecord: newRecord}
}

type row struct {
	doc  []byte
	sf   models.SearchFields
	core *models.Party
}

func (s *PostgresStore[R]) encode(record R) (row, error) {
	doc, err := json.Marshal(record)
	if err != nil {
		return row{}, fmt.Errorf("encode party document: %w", err)
	}
	return row{doc: doc, sf: record.SearchFields(), core: record.Core()}, nil
}

func nullableHash(hash string) sql.NullString {
	return sql.NullString{String: hash, Valid: hash != ""}
}

func (s *PostgresStore[R]) Create(ctx context.Context, record R) error {
	r, err := s.encode(record)
	if err != nil {
		return err
	}
	err = tx.Run(ctx, s.db, func(ctx context.Context, sqlTx *sql.Tx) error {
		_, err := sqlTx.ExecContext(ctx, `
			INSERT INTO parties (
				id, kind, status, organization_type, given_name, family_name, name,
				document, password_hash, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`,
			uuid.UUID(r.core.ID), string(s.kind), string(r.core.Status), r.sf.OrganizationType,
			r.sf.GivenName, r.sf.FamilyName, r.sf.Name,
			r.doc, nullableHash(r.core.PasswordHash()), r.core.CreatedAt, r.core.UpdatedAt,
		)
		if err != nil {
			return s.mapWriteError("insert party", err)
		}
		return s.insertEmails(ctx, sqlTx, r.core.ID, r.core.EmailAddresses())
	})
	if err != nil && !errors.Is(err, sentinel.ErrAlreadyUsed) {
		return s.mapWriteError("create party", err)
	}
	return err
}

func (s *PostgresStore[R]) insertEmails(ctx context.Context, sqlTx *sql.Tx, partyID id.PartyID, emails []string) error {
	if len(emails) == 0 {
		return nil
	}
	_, err := sqlTx.ExecContext(ctx, `
		INSERT INTO party_contact_emails (kind, email_address, party_id)
		SELECT $1, unnest($2::text[]), $3
	`, string(s.kind), pq.Array(emails), uuid.UUID(partyID))
	if err != nil {
		return s.mapWriteError("insert contact emails", err)
	}
	return nil
}

func (s *PostgresStore[R]) mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %s %s: %w", op, s.kind, pgErr.ConstraintName, sentinel.ErrAlreadyUsed)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *PostgresStore[R]) FindByID(ctx context.Context, partyID id.PartyID) (R, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM parties WHERE id = $1 AND kind = $2`,
		uuid.UUID(partyID), string(s.kind),
	).Scan(&doc)
	if err != nil {
		var zero R
		if errors.Is(err, sql.ErrNoRows) {
			return zero, sentinel.ErrNotFound
		}
		return zero, fmt.Errorf("find party by id: %w", err)
	}
	return decode(s.newRecord, doc)
}

// where builds the filter clause. Arguments start at $1 with the kind.
func (s *PostgresStore[R]) where(filter models.ListFilter) (string, []any) {
	clauses := []string{"kind = $1"}
	args := []any{string(s.kind)}
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args))))
	}
	if filter.Status != "" {
		add("status = ?", string(filter.Status))
	}
	if filter.OrganizationType != "" {
		add("organization_type = ?", string(filter.OrganizationType))
	}
	if filter.GivenName != "" {
		add(`given_name ILIKE ? ESCAPE '\'`, likePattern(filter.GivenName))
	}
	if filter.FamilyName != "" {
		add(`family_name ILIKE ? ESCAPE '\'`, likePattern(filter.FamilyName))
	}
	if filter.Name != "" {
		add(`name ILIKE ? ESCAPE '\'`, likePattern(filter.Name))
	}
	return strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(sub string) string {
	return "%" + likeEscaper.Replace(sub) + "%"
}

func (s *PostgresStore[R]) List(ctx context.Context, filter models.ListFilter) ([]R, error) {
	where, args := s.where(filter)
	query := `SELECT document FROM parties WHERE ` + where + ` ORDER BY created_at DESC, id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += " LIMIT $" + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()

	out := []R{}
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan party: %w", err)
		}
		r, err := decode(s.newRecord, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate parties: %w", err)
	}
	return out, nil
}

func (s *PostgresStore[R]) Count(ctx context.Context, filter models.ListFilter) (int, error) {
	where, args := s.where(filter)
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM parties WHERE `+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count parties: %w", err)
	}
	return total, nil
}

func (s *PostgresStore[R]) Update(ctx context.Context, partyID id.PartyID, fn func(R) error) (R, error) {
	var record R
	err := tx.Run(ctx, s.db, func(ctx context.Context, sqlTx *sql.Tx) error {
		var (
			doc  []byte
			hash sql.NullString
		)
		err := sqlTx.QueryRowContext(ctx,
			`SELECT document, password_hash FROM parties WHERE id = $1 AND kind = $2 FOR UPDATE`,
			uuid.UUID(partyID), string(s.kind),
		).Scan(&doc, &hash)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return sentinel.ErrNotFound
			}
			return fmt.Errorf("lock party: %w", err)
		}
		record, err = decode(s.newRecord, doc)
		if err != nil {
			return err
		}
		attachHash(record, hash.String)
		if err := fn(record); err != nil {
			return err
		}

		r, err := s.encode(record)
		if err != nil {
			return err
		}
		_, err = sqlTx.ExecContext(ctx, `
			UPDATE parties
			SET status = $3, organization_type = $4, given_name = $5, family_name = $6, name = $7,
				document = $8, password_hash = $9, updated_at = $10
			WHERE id = $1 AND kind = $2
		`,
			uuid.UUID(partyID), string(s.kind), string(r.core.Status), r.sf.OrganizationType,
			r.sf.GivenName, r.sf.FamilyName, r.sf.Name,
			r.doc, nullableHash(r.core.PasswordHash()), r.core.UpdatedAt,
		)
		if err != nil {
			return s.mapWriteError("update party", err)
		}
		if _, err := sqlTx.ExecContext(ctx, `DELETE FROM party_contact_emails WHERE party_id = $1`, uuid.UUID(partyID)); err != nil {
			return fmt.Errorf("clear contact emails: %w", err)
		}
		return s.insertEmails(ctx, sqlTx, partyID, r.core.EmailAddresses())
	})
	if err != nil {
		var zero R
		if errors.Is(err, sentinel.ErrNotFound) || errors.Is(err, sentinel.ErrAlreadyUsed) {
			return zero, err
		}
		if _, coded := dErrors.As(err); coded {
			return zero, err
		}
		return zero, s.mapWriteError("update party", err)
	}
	return record, nil
}

func (s *PostgresStore[R]) Delete(ctx context.Context, partyID id.PartyID) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM parties WHERE id = $1 AND kind = $2`,
		uuid.UUID(partyID), string(s.kind),
	)
	if err != nil {
		return fmt.Errorf("delete party: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete party rows affected: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore[R]) EmailInUse(ctx context.Context, emails []string, exclude id.PartyID) (bool, error) {
	if len(emails) == 0 {
		return false, nil
	}
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM party_contact_emails
			WHERE kind = $1 AND email_address = ANY($2::text[]) AND party_id <> $3
		)
	`, string(s.kind), pq.Array(emails), uuid.UUID(exclude)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check contact emails: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore[R]) FindCredentialHash(ctx context.Context, partyID id.PartyID) (string, error) {
	var hash sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT password_hash FROM parties WHERE id = $1 AND kind = $2`,
		uuid.UUID(partyID), string(s.kind),
	).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("find credential hash: %w", err)
	}
	return hash.String, nil
}
