package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/raysh454/mycv/internal/model"
)

const (
	// DefaultJobTitle names a saved job description until a resume is
	// generated from it.
	DefaultJobTitle = "Untitled Job"

	previewRunes = 200
)

const jobDescriptionQuery = `
	SELECT jd.id, jd.title, jd.company_name, jd.raw_text, jd.created_at, jd.updated_at, COUNT(gr.id)
	FROM job_descriptions jd
	LEFT JOIN generated_resumes gr ON gr.job_description_id = jd.id`

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func scanJobDescription(row scanner) (*model.JobDescription, error) {
	var (
		jd      model.JobDescription
		company sql.NullString
	)
	if err := row.Scan(&jd.ID, &jd.Title, &company, &jd.RawText, &jd.CreatedAt, &jd.UpdatedAt, &jd.ResumeCount); err != nil {
		return nil, err
	}
	jd.CompanyName = strPtr(company)
	return &jd, nil
}

func getJobDescription(ctx context.Context, q queryer, id int) (*model.JobDescription, error) {
	jd, err := scanJobDescription(q.QueryRowContext(ctx, jobDescriptionQuery+` WHERE jd.id = ? GROUP BY jd.id`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("Job description")
	}
	return jd, err
}

// ListJobDescriptions returns the most recently updated first, each with a
// short preview of its text.
func (s *Store) ListJobDescriptions(ctx context.Context) ([]model.JobDescriptionListItem, error) {
	rows, err := s.db.QueryContext(ctx, jobDescriptionQuery+` GROUP BY jd.id ORDER BY jd.updated_at DESC, jd.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.JobDescriptionListItem{}
	for rows.Next() {
		jd, err := scanJobDescription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, model.JobDescriptionListItem{
			JobDescription: *jd,
			RawTextPreview: preview(jd.RawText),
		})
	}
	return out, rows.Err()
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewRunes {
		return s
	}
	return string(r[:previewRunes])
}

func (s *Store) GetJobDescription(ctx context.Context, id int) (*model.JobDescription, error) {
	return getJobDescription(ctx, s.db, id)
}

// CreateJobDescription saves raw text under DefaultJobTitle.
func (s *Store) CreateJobDescription(ctx context.Context, rawText string) (*model.JobDescription, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO job_descriptions (title, raw_text) VALUES (?, ?)`, DefaultJobTitle, rawText)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetJobDescription(ctx, int(id))
}

// UpdateJobDescription applies the set fields. A changed text first saves
// the previous text as the next version.
func (s *Store) UpdateJobDescription(ctx context.Context, id int, upd model.JobDescriptionUpdate) (*model.JobDescription, error) {
	var out *model.JobDescription
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		out, err = updateJobDescription(ctx, tx, id, upd)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func updateJobDescription(ctx context.Context, tx *sql.Tx, id int, upd model.JobDescriptionUpdate) (*model.JobDescription, error) {
	current, err := getJobDescription(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if upd.RawText != nil && *upd.RawText != "" && *upd.RawText != current.RawText {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO job_description_versions (job_description_id, raw_text, version_number)
			VALUES (?, ?, (SELECT COALESCE(MAX(version_number), 0) + 1 FROM job_description_versions WHERE job_description_id = ?))`,
			id, current.RawText, id); err != nil {
			return nil, err
		}
	}

	if upd.Title != nil || upd.RawText != nil {
		title, raw := current.Title, current.RawText
		if upd.Title != nil {
			title = *upd.Title
		}
		if upd.RawText != nil {
			raw = *upd.RawText
		}
		if _, err := tx.ExecContext(ctx, `UPDATE job_descriptions SET title = ?, raw_text = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			title, raw, id); err != nil {
			return nil, err
		}
	}
	return getJobDescription(ctx, tx, id)
}

// DeleteJobDescription removes the job description with its versions and
// generated resumes.
func (s *Store) DeleteJobDescription(ctx context.Context, id int) error {
	return s.deleteByID(ctx, "job_descriptions", "Job description", id)
}

// JobDescriptionVersions returns the newest version first.
func (s *Store) JobDescriptionVersions(ctx context.Context, id int) ([]model.JobDescriptionVersion, error) {
	if _, err := s.GetJobDescription(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, version_number, raw_text, created_at
		FROM job_description_versions
		WHERE job_description_id = ?
		ORDER BY version_number DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.JobDescriptionVersion{}
	for rows.Next() {
		var v model.JobDescriptionVersion
		if err := rows.Scan(&v.ID, &v.VersionNumber, &v.RawText, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// RestoreJobDescriptionVersion makes an old text current again. The text
// being replaced is itself kept as a new version.
func (s *Store) RestoreJobDescriptionVersion(ctx context.Context, id, versionID int) (*model.JobDescription, error) {
	var out *model.JobDescription
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var raw string
		err := tx.QueryRowContext(ctx, `SELECT raw_text FROM job_description_versions WHERE id = ? AND job_description_id = ?`,
			versionID, id).Scan(&raw)
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("Version")
		}
		if err != nil {
			return err
		}
		out, err = updateJobDescription(ctx, tx, id, model.JobDescriptionUpdate{RawText: &raw})
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
