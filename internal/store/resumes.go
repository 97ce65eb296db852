package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/raysh454/mycv/internal/model"
)

// NewResume is a generated resume ready to be saved.
type NewResume struct {
	// JobDescriptionID links to a saved job description; 0 saves RawText as
	// a new one.
	JobDescriptionID int
	RawText          string

	JobTitle    string
	CompanyName string
	MatchScore  float64
	Analysis    *model.JobAnalysis
	Content     model.ResumeContent
	Language    string
}

// SaveResume stores a generated resume. A linked job description still
// named DefaultJobTitle is renamed after the job.
func (s *Store) SaveResume(ctx context.Context, in NewResume) (*model.GeneratedResume, error) {
	analysis, err := json.Marshal(in.Analysis)
	if err != nil {
		return nil, fmt.Errorf("encode job analysis: %w", err)
	}
	content, err := json.Marshal(in.Content)
	if err != nil {
		return nil, fmt.Errorf("encode resume: %w", err)
	}
	title := in.JobTitle + " at " + in.CompanyName

	var resumeID int64
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		jdID := int64(in.JobDescriptionID)
		if jdID != 0 {
			current, err := getJobDescription(ctx, tx, in.JobDescriptionID)
			if err != nil {
				return err
			}
			if current.Title == DefaultJobTitle {
				_, err = tx.ExecContext(ctx, `UPDATE job_descriptions SET title = ?, company_name = ?, parsed_data = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
					title, in.CompanyName, string(analysis), jdID)
			} else {
				_, err = tx.ExecContext(ctx, `UPDATE job_descriptions SET parsed_data = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
					string(analysis), jdID)
			}
			if err != nil {
				return err
			}
		} else {
			res, err := tx.ExecContext(ctx, `INSERT INTO job_descriptions (title, company_name, raw_text, parsed_data) VALUES (?, ?, ?, ?)`,
				title, in.CompanyName, in.RawText, string(analysis))
			if err != nil {
				return err
			}
			if jdID, err = res.LastInsertId(); err != nil {
				return err
			}
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO generated_resumes (job_description_id, job_title, company_name, match_score, resume_content, language)
			VALUES (?, ?, ?, ?, ?, ?)`,
			jdID, in.JobTitle, in.CompanyName, in.MatchScore, string(content), in.Language)
		if err != nil {
			return err
		}
		resumeID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetResume(ctx, int(resumeID))
}

// GetResume returns the resume with the job analysis of its job description.
// The current profile photo is filled in when the stored copy has none.
func (s *Store) GetResume(ctx context.Context, id int) (*model.GeneratedResume, error) {
	var (
		r                  model.GeneratedResume
		jobTitle, company  sql.NullString
		score              sql.NullFloat64
		content, createdAt string
		analysis           sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT gr.id, gr.job_title, gr.company_name, gr.match_score, gr.resume_content, gr.language, gr.created_at, jd.parsed_data
		FROM generated_resumes gr
		JOIN job_descriptions jd ON jd.id = gr.job_description_id
		WHERE gr.id = ?`, id).Scan(&r.ID, &jobTitle, &company, &score, &content, &r.Language, &createdAt, &analysis)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("Resume")
	}
	if err != nil {
		return nil, err
	}
	r.JobTitle = strPtr(jobTitle)
	r.CompanyName = strPtr(company)
	r.MatchScore = floatPtr(score)
	r.CreatedAt = &createdAt

	var rc model.ResumeContent
	if err := json.Unmarshal([]byte(content), &rc); err != nil {
		return nil, fmt.Errorf("decode resume %d: %w", id, err)
	}
	r.Resume = &rc
	if analysis.Valid && analysis.String != "" && analysis.String != "null" {
		var ja model.JobAnalysis
		if err := json.Unmarshal([]byte(analysis.String), &ja); err != nil {
			return nil, fmt.Errorf("decode job analysis: %w", err)
		}
		r.JobAnalysis = &ja
	}

	if rc.PersonalInfo != nil {
		if photo, _ := rc.PersonalInfo["photo"].(string); photo == "" {
			current, err := s.GetPhoto(ctx)
			if err != nil {
				return nil, err
			}
			if current != "" {
				rc.PersonalInfo["photo"] = current
			}
		}
	}
	return &r, nil
}

// ListResumes returns the newest resume first.
func (s *Store) ListResumes(ctx context.Context) ([]model.ResumeHistoryItem, error) {
	return s.listResumes(ctx, `SELECT id, job_title, company_name, match_score, created_at FROM generated_resumes ORDER BY created_at DESC, id DESC`)
}

// JobDescriptionResumes lists the resumes generated from one job description.
func (s *Store) JobDescriptionResumes(ctx context.Context, jdID int) ([]model.ResumeHistoryItem, error) {
	if _, err := s.GetJobDescription(ctx, jdID); err != nil {
		return nil, err
	}
	return s.listResumes(ctx, `
		SELECT id, job_title, company_name, match_score, created_at
		FROM generated_resumes WHERE job_description_id = ?
		ORDER BY created_at DESC, id DESC`, jdID)
}

func (s *Store) listResumes(ctx context.Context, query string, args ...any) ([]model.ResumeHistoryItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ResumeHistoryItem{}
	for rows.Next() {
		var (
			it                           model.ResumeHistoryItem
			jobTitle, company, createdAt sql.NullString
			score                        sql.NullFloat64
		)
		if err := rows.Scan(&it.ID, &jobTitle, &company, &score, &createdAt); err != nil {
			return nil, err
		}
		it.JobTitle = strPtr(jobTitle)
		it.CompanyName = strPtr(company)
		it.MatchScore = floatPtr(score)
		it.CreatedAt = strPtr(createdAt)
		out = append(out, it)
	}
	return out, rows.Err()
}

// UpdateResumeContent replaces the editable content. The personal info
// snapshot taken at generation time is kept.
func (s *Store) UpdateResumeContent(ctx context.Context, id int, rc model.ResumeContent) (*model.GeneratedResume, error) {
	var existing string
	err := s.db.QueryRowContext(ctx, `SELECT resume_content FROM generated_resumes WHERE id = ?`, id).Scan(&existing)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("Resume")
	}
	if err != nil {
		return nil, err
	}
	var old model.ResumeContent
	if err := json.Unmarshal([]byte(existing), &old); err == nil && old.PersonalInfo != nil {
		rc.PersonalInfo = old.PersonalInfo
	}

	content, err := json.Marshal(rc)
	if err != nil {
		return nil, fmt.Errorf("encode resume: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE generated_resumes SET resume_content = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(content), id); err != nil {
		return nil, err
	}
	return s.GetResume(ctx, id)
}

// DeleteResume keeps the job description it was generated from.
func (s *Store) DeleteResume(ctx context.Context, id int) error {
	return s.deleteByID(ctx, "generated_resumes", "Resume", id)
}
