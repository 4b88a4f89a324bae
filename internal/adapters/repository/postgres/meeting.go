package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/haris936hk/EchoNote-sub002/internal/core/domain"
	"github.com/haris936hk/EchoNote-sub002/internal/core/port"

	"github.com/google/uuid"
)

// SQLQuerier is the subset of database/sql used by the repository
type SQLQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlMeetingRepository struct {
	db SQLQuerier
}

// NewSqlMeetingRepository creates sqlMeetingRepository that implements port.MeetingRepository
func NewSqlMeetingRepository(db SQLQuerier) port.MeetingRepository {
	return &sqlMeetingRepository{
		db: db,
	}
}

const meetingColumns = `id, user_id, title, description, category, status, temp_ref,
       audio_filename, audio_url, audio_size, duration_seconds, transcript,
       summary, failure_reason, created_at, updated_at`

// Create creates a new meeting entry
func (s *sqlMeetingRepository) Create(ctx context.Context, m domain.Meeting) error {
	query := `INSERT INTO meetings (id, user_id, title, description, category, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		m.ID, m.OwnerID, m.Title, nullString(m.Description), m.Category, m.Status, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting meeting: %w", err)
	}
	return nil
}

// FindByID finds by id
func (s *sqlMeetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE id = $1`

	var dbm dbMeeting
	err := s.db.QueryRowContext(ctx, query, id).Scan(dbm.fields()...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMeetingNotFound
		}
		return nil, err
	}

	return dbm.ToDomain()
}

// ListByOwner lists meetings for one owner, most recent first
func (s *sqlMeetingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Meeting, error) {
	query := `SELECT ` + meetingColumns + ` FROM meetings WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying meetings: %w", err)
	}
	defer rows.Close()

	var meetings []domain.Meeting
	for rows.Next() {
		var dbm dbMeeting
		if err := rows.Scan(dbm.fields()...); err != nil {
			return nil, fmt.Errorf("error scanning meeting: %w", err)
		}
		m, err := dbm.ToDomain()
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, *m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating meetings: %w", err)
	}

	return meetings, nil
}

// TransitionStatus performs a compare-and-set on the status column: the new
// status and patch columns are written in one UPDATE guarded by the expected
// current status, so two concurrent transitions cannot both win.
func (s *sqlMeetingRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.MeetingStatus, patch port.StatusPatch) (bool, error) {

	set := []string{"status = $1", "updated_at = now()"}
	args := []any{to}
	next := 2

	add := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, next))
		args = append(args, value)
		next++
	}

	if patch.TempRef != nil {
		add("temp_ref", *patch.TempRef)
	}
	if patch.ClearTempRef {
		set = append(set, "temp_ref = NULL")
	}
	if patch.AudioFilename != nil {
		add("audio_filename", *patch.AudioFilename)
	}
	if patch.AudioURL != nil {
		add("audio_url", *patch.AudioURL)
	}
	if patch.AudioSize != nil {
		add("audio_size", *patch.AudioSize)
	}
	if patch.Duration != nil {
		add("duration_seconds", *patch.Duration)
	}
	if patch.Transcript != nil {
		add("transcript", *patch.Transcript)
	}
	if patch.Summary != nil {
		raw, err := json.Marshal(patch.Summary)
		if err != nil {
			return false, fmt.Errorf("error marshaling summary: %w", err)
		}
		add("summary", raw)
	}
	if patch.FailureReason != nil {
		add("failure_reason", *patch.FailureReason)
	}

	query := fmt.Sprintf(
		"UPDATE meetings SET %s WHERE id = $%d AND status = $%d",
		strings.Join(set, ", "), next, next+1,
	)
	args = append(args, id, from)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("error transitioning meeting status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return true, nil
	}

	exists, err := s.Exists(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, domain.ErrMeetingNotFound
	}
	return false, nil
}

// MarkFailed flips to failed unless a terminal status already won
func (s *sqlMeetingRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) (bool, error) {
	query := `UPDATE meetings
              SET status = $1, failure_reason = $2, updated_at = now()
              WHERE id = $3 AND status NOT IN ($4, $5)`

	result, err := s.db.ExecContext(ctx, query,
		domain.MeetingStatusFailed, reason, id,
		domain.MeetingStatusCompleted, domain.MeetingStatusFailed)
	if err != nil {
		return false, fmt.Errorf("error marking meeting failed: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return true, nil
	}

	exists, err := s.Exists(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, domain.ErrMeetingNotFound
	}
	return false, nil
}

// Delete hard deletes the meeting row
func (s *sqlMeetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting meeting: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrMeetingNotFound
	}
	return nil
}

// Exists reports whether a meeting row exists
func (s *sqlMeetingRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM meetings WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking meeting existence: %w", err)
	}
	return exists, nil
}

// dbMeeting represents a meeting row in DB
type dbMeeting struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Title         string
	Description   sql.NullString
	Category      string
	Status        string
	TempRef       sql.NullString
	AudioFilename sql.NullString
	AudioURL      sql.NullString
	AudioSize     sql.NullInt64
	Duration      sql.NullFloat64
	Transcript    sql.NullString
	Summary       []byte
	FailureReason sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (m *dbMeeting) fields() []any {
	return []any{
		&m.ID, &m.UserID, &m.Title, &m.Description, &m.Category, &m.Status,
		&m.TempRef, &m.AudioFilename, &m.AudioURL, &m.AudioSize, &m.Duration,
		&m.Transcript, &m.Summary, &m.FailureReason, &m.CreatedAt, &m.UpdatedAt,
	}
}

// ToDomain converts to domain.Meeting
func (m *dbMeeting) ToDomain() (*domain.Meeting, error) {
	meeting := &domain.Meeting{
		ID:            m.ID,
		OwnerID:       m.UserID,
		Title:         m.Title,
		Description:   m.Description.String,
		Category:      domain.MeetingCategory(m.Category),
		Status:        domain.MeetingStatus(m.Status),
		TempRef:       m.TempRef.String,
		AudioFilename: m.AudioFilename.String,
		AudioURL:      m.AudioURL.String,
		AudioSize:     m.AudioSize.Int64,
		Duration:      m.Duration.Float64,
		Transcript:    m.Transcript.String,
		FailureReason: m.FailureReason.String,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if len(m.Summary) > 0 {
		var summary domain.MeetingSummary
		if err := json.Unmarshal(m.Summary, &summary); err != nil {
			return nil, fmt.Errorf("error unmarshaling summary: %w", err)
		}
		meeting.Summary = &summary
	}

	return meeting, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
