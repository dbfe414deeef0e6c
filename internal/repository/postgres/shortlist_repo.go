package postgres

import (
	"context"
	"time"

	"devhire-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type shortlistRepository struct {
	db *pgxpool.Pool
}

func NewShortlistRepository(db *pgxpool.Pool) domain.ShortlistRepository {
	return &shortlistRepository{db: db}
}

func (r *shortlistRepository) Create(ctx context.Context, entry *domain.ShortlistEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO shortlists (id, recruiter_id, developer_id, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`
	err := r.db.QueryRow(ctx, query, entry.ID, entry.RecruiterID, entry.DeveloperID, entry.Notes).
		Scan(&entry.CreatedAt)
	return translateError(err)
}

func (r *shortlistRepository) Delete(ctx context.Context, recruiterID, developerID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM shortlists WHERE recruiter_id = $1 AND developer_id = $2`,
		recruiterID, developerID)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *shortlistRepository) Exists(ctx context.Context, recruiterID, developerID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM shortlists WHERE recruiter_id = $1 AND developer_id = $2)`,
		recruiterID, developerID).Scan(&exists)
	if err != nil {
		return false, translateError(err)
	}
	return exists, nil
}

func (r *shortlistRepository) ListByRecruiter(ctx context.Context, recruiterID string) ([]domain.ShortlistView, error) {
	query := `
		SELECT s.id, s.developer_id, s.notes, s.created_at,
			p.id, p.title, p.bio, p.location, p.availability,
			p.skills, p.experience, p.education, p.projects, p.social_links,
			p.profile_completion, p.created_at, p.updated_at,
			u.name, u.email
		FROM shortlists s
		LEFT JOIN developer_profiles p ON p.user_id = s.developer_id
		LEFT JOIN users u ON u.id = s.developer_id
		WHERE s.recruiter_id = $1
		ORDER BY s.created_at DESC`

	rows, err := r.db.Query(ctx, query, recruiterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := []domain.ShortlistView{}
	for rows.Next() {
		var v domain.ShortlistView
		var (
			profileID                                       *int64
			title, bio, location, availability, name, email *string
			skills                                          []string
			experience, education, projects, socialLinks    []byte
			completion                                      *int
			profileCreatedAt, profileUpdatedAt              *time.Time
		)

		err := rows.Scan(
			&v.ShortlistID, &v.DeveloperID, &v.Notes, &v.CreatedAt,
			&profileID, &title, &bio, &location, &availability,
			pq.Array(&skills), &experience, &education, &projects, &socialLinks,
			&completion, &profileCreatedAt, &profileUpdatedAt,
			&name, &email,
		)
		if err != nil {
			return nil, err
		}

		if profileID != nil {
			p := &domain.DeveloperProfile{
				ID:                *profileID,
				UserID:            v.DeveloperID,
				Title:             deref(title),
				Bio:               deref(bio),
				Location:          deref(location),
				Availability:      deref(availability),
				ProfileCompletion: derefInt(completion),
			}
			if profileCreatedAt != nil {
				p.CreatedAt = *profileCreatedAt
			}
			if profileUpdatedAt != nil {
				p.UpdatedAt = *profileUpdatedAt
			}
			if err := decodeProfileDocuments(p, skills, experience, education, projects, socialLinks); err != nil {
				return nil, err
			}
			p.User = &domain.UserSummary{ID: v.DeveloperID, Name: deref(name), Email: deref(email)}
			v.Profile = p
		}

		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return views, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
