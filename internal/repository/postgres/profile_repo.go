package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"devhire-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

type profileRepository struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepository{db: db}
}

const insertEmptyProfile = `INSERT INTO developer_profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`

func (r *profileRepository) GetOrCreate(ctx context.Context, userID string) (*domain.DeveloperProfile, bool, error) {
	// The unique index on user_id makes concurrent first reads converge on one row
	tag, err := r.db.Exec(ctx, insertEmptyProfile, userID)
	if err != nil {
		return nil, false, translateError(err)
	}
	p, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return p, tag.RowsAffected() == 1, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.DeveloperProfile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, selectProfile+` WHERE p.user_id = $1`, userID))
	if err != nil {
		return nil, translateError(err)
	}
	return p, nil
}

func (r *profileRepository) Mutate(ctx context.Context, userID string, createIfMissing bool, fn domain.ProfileMutation) (*domain.DeveloperProfile, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if createIfMissing {
		if _, err := tx.Exec(ctx, insertEmptyProfile, userID); err != nil {
			return nil, translateError(err)
		}
	}

	current, err := scanProfile(tx.QueryRow(ctx, selectProfile+` WHERE p.user_id = $1 FOR UPDATE OF p`, userID))
	if err != nil {
		return nil, translateError(err)
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}

	experience, err := marshalJSON(next.Experience)
	if err != nil {
		return nil, err
	}
	education, err := marshalJSON(next.Education)
	if err != nil {
		return nil, err
	}
	projects, err := marshalJSON(next.Projects)
	if err != nil {
		return nil, err
	}
	socialLinks, err := marshalJSON(next.SocialLinks)
	if err != nil {
		return nil, err
	}

	updateQuery := `
		UPDATE developer_profiles SET
			title = $2, bio = $3, location = $4, availability = $5,
			skills = $6::text[],
			experience = $7::jsonb, education = $8::jsonb, projects = $9::jsonb,
			social_links = $10::jsonb,
			profile_completion = $11,
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING updated_at`

	err = tx.QueryRow(ctx, updateQuery,
		userID, next.Title, next.Bio, next.Location, next.Availability,
		pq.Array(next.Skills),
		experience, education, projects,
		socialLinks,
		next.ProfileCompletion,
	).Scan(&next.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", translateError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return next, nil
}

func (r *profileRepository) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.DeveloperProfile, int64, error) {
	listSQL, listArgs, countSQL, countArgs := buildSearchQueries(criteria)

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count query failed: %w", err)
	}

	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("search query failed: %w", err)
	}
	defer rows.Close()

	profiles := []domain.DeveloperProfile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

func (r *profileRepository) Stats(ctx context.Context) (*domain.SearchStats, error) {
	stats := &domain.SearchStats{TopSkills: []domain.SkillCount{}}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return r.db.QueryRow(gctx, `SELECT COUNT(*) FROM developer_profiles`).Scan(&stats.TotalDevelopers)
	})
	g.Go(func() error {
		return r.db.QueryRow(gctx, `SELECT COUNT(*) FROM developer_profiles WHERE availability = $1`,
			domain.AvailabilityAvailable).Scan(&stats.AvailableDevelopers)
	})
	g.Go(func() error {
		return r.db.QueryRow(gctx, `SELECT COUNT(*) FROM developer_profiles WHERE profile_completion = 100`).
			Scan(&stats.CompletedProfiles)
	})
	g.Go(func() error {
		rows, err := r.db.Query(gctx, `
			SELECT skill, COUNT(*) AS cnt
			FROM developer_profiles, unnest(skills) AS skill
			GROUP BY skill
			ORDER BY cnt DESC, skill ASC
			LIMIT $1`, domain.TopSkillsLimit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var sc domain.SkillCount
			if err := rows.Scan(&sc.Skill, &sc.Count); err != nil {
				return err
			}
			stats.TopSkills = append(stats.TopSkills, sc)
		}
		return rows.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute search stats: %w", err)
	}
	return stats, nil
}

// scanProfile reads one row selected with profileColumns.
func scanProfile(row pgx.Row) (*domain.DeveloperProfile, error) {
	var p domain.DeveloperProfile
	var skills []string
	var experience, education, projects, socialLinks []byte
	var name, email string

	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Bio, &p.Location, &p.Availability,
		pq.Array(&skills), &experience, &education, &projects, &socialLinks,
		&p.ProfileCompletion, &p.CreatedAt, &p.UpdatedAt,
		&name, &email,
	)
	if err != nil {
		return nil, err
	}

	if err := decodeProfileDocuments(&p, skills, experience, education, projects, socialLinks); err != nil {
		return nil, err
	}
	p.User = &domain.UserSummary{ID: p.UserID, Name: name, Email: email}
	return &p, nil
}

func decodeProfileDocuments(p *domain.DeveloperProfile, skills []string, experience, education, projects, socialLinks []byte) error {
	p.Skills = skills
	if p.Skills == nil {
		p.Skills = []string{}
	}
	p.Experience = []domain.Experience{}
	p.Education = []domain.Education{}
	p.Projects = []domain.Project{}

	if err := unmarshalJSON(experience, &p.Experience); err != nil {
		return fmt.Errorf("decode experience: %w", err)
	}
	if err := unmarshalJSON(education, &p.Education); err != nil {
		return fmt.Errorf("decode education: %w", err)
	}
	if err := unmarshalJSON(projects, &p.Projects); err != nil {
		return fmt.Errorf("decode projects: %w", err)
	}
	if err := unmarshalJSON(socialLinks, &p.SocialLinks); err != nil {
		return fmt.Errorf("decode social links: %w", err)
	}
	return nil
}

// JSON documents travel as text so they survive the simple query protocol.
func marshalJSON(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalJSON(b []byte, out interface{}) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, out)
}
