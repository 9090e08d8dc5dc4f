package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bruce184/OCMS/internal/app/models"
	"github.com/bruce184/OCMS/internal/db"
	"github.com/bruce184/OCMS/internal/pkg/apperrors"
	"github.com/bruce184/OCMS/internal/pkg/dberrors"
)

// PostgresAnnouncementRepository handles database operations for class and
// system-wide announcements.
type PostgresAnnouncementRepository struct {
	db *pgxpool.Pool
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(pool *pgxpool.Pool) *PostgresAnnouncementRepository {
	return &PostgresAnnouncementRepository{db: pool}
}

const announcementColumns = `announcement_id, class_id, title, content, posted_by, posted_at, is_published, priority, target_audience`

func scanAnnouncement(row pgx.Row) (*models.Announcement, error) {
	var a models.Announcement
	err := row.Scan(&a.AnnouncementID, &a.ClassID, &a.Title, &a.Content,
		&a.PostedBy, &a.PostedAt, &a.IsPublished, &a.Priority, &a.TargetAudience)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error scanning announcement: %w", err)
	}
	return &a, nil
}

func (r *PostgresAnnouncementRepository) query(ctx context.Context, suffix string, args ...interface{}) ([]*models.Announcement, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+announcementColumns+` FROM announcements`+suffix, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing announcements: %w", err)
	}
	defer rows.Close()

	var announcements []*models.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

// List retrieves all announcements, newest first.
func (r *PostgresAnnouncementRepository) List(ctx context.Context) ([]*models.Announcement, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	return r.query(ctx, ` ORDER BY posted_at DESC`)
}

// ListByClass retrieves the announcements of one class, newest first.
func (r *PostgresAnnouncementRepository) ListByClass(ctx context.Context, classID string) ([]*models.Announcement, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	return r.query(ctx, ` WHERE class_id = $1 ORDER BY posted_at DESC`, classID)
}

// Get retrieves an announcement by its id.
func (r *PostgresAnnouncementRepository) Get(ctx context.Context, announcementID string) (*models.Announcement, error) {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx,
		`SELECT `+announcementColumns+` FROM announcements WHERE announcement_id = $1`, announcementID)
	return scanAnnouncement(row)
}

// Create inserts an announcement.
func (r *PostgresAnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO announcements (announcement_id, class_id, title, content, posted_by, is_published, priority, target_audience)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING posted_at`,
		announcement.AnnouncementID, announcement.ClassID, announcement.Title,
		announcement.Content, announcement.PostedBy, announcement.IsPublished,
		announcement.Priority, announcement.TargetAudience).
		Scan(&announcement.PostedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDuplicateKey
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error creating announcement: %w", err)
	}
	return nil
}

// Update applies a partial-field merge to an announcement.
func (r *PostgresAnnouncementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx, `
		UPDATE announcements SET title = $1, content = $2, priority = $3, is_published = $4
		WHERE announcement_id = $5`,
		announcement.Title, announcement.Content, announcement.Priority,
		announcement.IsPublished, announcement.AnnouncementID)
	if err != nil {
		return fmt.Errorf("error updating announcement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Delete removes an announcement.
func (r *PostgresAnnouncementRepository) Delete(ctx context.Context, announcementID string) error {
	ctx, cancel := db.QueryContext(ctx)
	defer cancel()

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM announcements WHERE announcement_id = $1`, announcementID)
	if err != nil {
		return fmt.Errorf("error deleting announcement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}
