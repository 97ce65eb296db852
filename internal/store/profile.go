package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/raysh454/mycv/internal/model"
)

// ─── Personal info & photo ─────────────────────────────────────────────

const userColumns = `id, full_name, email, phone, location, linkedin_url, summary, photo, created_at, updated_at`

func scanUser(row scanner) (*model.PersonalInfo, error) {
	var (
		u                                         model.PersonalInfo
		phone, location, linkedin, summary, photo sql.NullString
		createdAt, updatedAt                      sql.NullString
	)
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &phone, &location, &linkedin, &summary, &photo, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	u.Phone = strPtr(phone)
	u.Location = strPtr(location)
	u.LinkedInURL = strPtr(linkedin)
	u.Summary = strPtr(summary)
	u.Photo = strPtr(photo)
	u.CreatedAt = strPtr(createdAt)
	u.UpdatedAt = strPtr(updatedAt)
	return &u, nil
}

// GetUser returns nil, nil when no personal info has been saved yet.
func (s *Store) GetUser(ctx context.Context) (*model.PersonalInfo, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

// UpsertUser creates or replaces the personal info. The photo is kept.
func (s *Store) UpsertUser(ctx context.Context, in model.PersonalInfoInput) (*model.PersonalInfo, error) {
	if err := upsertUser(ctx, s.db, in); err != nil {
		return nil, err
	}
	return s.GetUser(ctx)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertUser(ctx context.Context, db execer, in model.PersonalInfoInput) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO users (id, full_name, email, phone, location, linkedin_url, summary)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			email = excluded.email,
			phone = excluded.phone,
			location = excluded.location,
			linkedin_url = excluded.linkedin_url,
			summary = excluded.summary,
			updated_at = CURRENT_TIMESTAMP`,
		in.FullName, in.Email, nullable(in.Phone), nullable(in.Location), nullable(in.LinkedInURL), nullable(in.Summary))
	return err
}

// GetPhoto returns "" when there is no photo.
func (s *Store) GetPhoto(ctx context.Context) (string, error) {
	var photo sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT photo FROM users WHERE id = 1`).Scan(&photo)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return photo.String, err
}

// SetPhoto fails with ErrNoUser until personal info exists.
func (s *Store) SetPhoto(ctx context.Context, dataURL string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET photo = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1`, dataURL)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoUser
	}
	return nil
}

func (s *Store) DeletePhoto(ctx context.Context) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET photo = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = 1 AND photo IS NOT NULL AND photo != ''`)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, "Photo")
}

// ─── Work experiences ──────────────────────────────────────────────────

const workColumns = `id, company, title, start_date, end_date, is_current, description, location, created_at, updated_at`

func scanWork(row scanner) (*model.WorkExperience, error) {
	var (
		w                    model.WorkExperience
		endDate, desc, loc   sql.NullString
		createdAt, updatedAt sql.NullString
		current              int
	)
	if err := row.Scan(&w.ID, &w.Company, &w.Title, &w.StartDate, &endDate, &current, &desc, &loc, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	w.EndDate = strPtr(endDate)
	w.IsCurrent = current != 0
	w.Description = strPtr(desc)
	w.Location = strPtr(loc)
	w.CreatedAt = strPtr(createdAt)
	w.UpdatedAt = strPtr(updatedAt)
	return &w, nil
}

// ListWorkExperiences returns current positions first, then newest first.
func (s *Store) ListWorkExperiences(ctx context.Context) ([]model.WorkExperience, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+workColumns+` FROM work_experiences ORDER BY is_current DESC, start_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.WorkExperience{}
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

func (s *Store) GetWorkExperience(ctx context.Context, id int) (*model.WorkExperience, error) {
	w, err := scanWork(s.db.QueryRowContext(ctx, `SELECT `+workColumns+` FROM work_experiences WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("Work experience")
	}
	return w, err
}

func (s *Store) CreateWorkExperience(ctx context.Context, in model.WorkExperienceInput) (*model.WorkExperience, error) {
	id, err := insertWork(ctx, s.db, in)
	if err != nil {
		return nil, err
	}
	return s.GetWorkExperience(ctx, id)
}

func insertWork(ctx context.Context, db execer, in model.WorkExperienceInput) (int, error) {
	res, err := db.ExecContext(ctx, `
		INSERT INTO work_experiences (company, title, start_date, end_date, is_current, description, location)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.Company, in.Title, in.StartDate, nullable(in.EndDate), boolToInt(in.IsCurrent), nullable(in.Description), nullable(in.Location))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (s *Store) UpdateWorkExperience(ctx context.Context, id int, in model.WorkExperienceInput) (*model.WorkExperience, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE work_experiences SET
			company = ?, title = ?, start_date = ?, end_date = ?, is_current = ?,
			description = ?, location = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		in.Company, in.Title, in.StartDate, nullable(in.EndDate), boolToInt(in.IsCurrent), nullable(in.Description), nullable(in.Location), id)
	if err != nil {
		return nil, err
	}
	if err := affectedOrNotFound(res, "Work experience"); err != nil {
		return nil, err
	}
	return s.GetWorkExperience(ctx, id)
}

func (s *Store) DeleteWorkExperience(ctx context.Context, id int) error {
	return s.deleteByID(ctx, "work_experiences", "Work experience", id)
}

// deleteByID is only called with constant table names.
func (s *Store) deleteByID(ctx context.Context, table, entity string, id int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, entity)
}

// ─── Education ─────────────────────────────────────────────────────────

const educationColumns = `id, institution, degree, field_of_study, graduation_year, gpa, notes, created_at, updated_at`

func scanEducation(row scanner) (*model.Education, error) {
	var (
		e                    model.Education
		field, notes         sql.NullString
		year                 sql.NullInt64
		gpa                  sql.NullFloat64
		createdAt, updatedAt sql.NullString
	)
	if err := row.Scan(&e.ID, &e.Institution, &e.Degree, &field, &year, &gpa, &notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	e.FieldOfStudy = strPtr(field)
	e.GraduationYear = intPtr(year)
	e.GPA = floatPtr(gpa)
	e.Notes = strPtr(notes)
	e.CreatedAt = strPtr(createdAt)
	e.UpdatedAt = strPtr(updatedAt)
	return &e, nil
}

// ListEducation returns the most recent graduation first.
func (s *Store) ListEducation(ctx context.Context) ([]model.Education, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+educationColumns+` FROM education ORDER BY graduation_year DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Education{}
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *Store) GetEducation(ctx context.Context, id int) (*model.Education, error) {
	e, err := scanEducation(s.db.QueryRowContext(ctx, `SELECT `+educationColumns+` FROM education WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("Education")
	}
	return e, err
}

func (s *Store) CreateEducation(ctx context.Context, in model.EducationInput) (*model.Education, error) {
	id, err := insertEducation(ctx, s.db, in)
	if err != nil {
		return nil, err
	}
	return s.GetEducation(ctx, id)
}

func insertEducation(ctx context.Context, db execer, in model.EducationInput) (int, error) {
	res, err := db.ExecContext(ctx, `
		INSERT INTO education (institution, degree, field_of_study, graduation_year, gpa, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.Institution, in.Degree, nullable(in.FieldOfStudy), nullable(in.GraduationYear), nullable(in.GPA), nullable(in.Notes))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (s *Store) UpdateEducation(ctx context.Context, id int, in model.EducationInput) (*model.Education, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE education SET
			institution = ?, degree = ?, field_of_study = ?, graduation_year = ?,
			gpa = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		in.Institution, in.Degree, nullable(in.FieldOfStudy), nullable(in.GraduationYear), nullable(in.GPA), nullable(in.Notes), id)
	if err != nil {
		return nil, err
	}
	if err := affectedOrNotFound(res, "Education"); err != nil {
		return nil, err
	}
	return s.GetEducation(ctx, id)
}

func (s *Store) DeleteEducation(ctx context.Context, id int) error {
	return s.deleteByID(ctx, "education", "Education", id)
}

// ─── Skills ────────────────────────────────────────────────────────────

// ListSkills returns skills sorted by name.
func (s *Store) ListSkills(ctx context.Context) ([]model.Skill, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Skill{}
	for rows.Next() {
		var sk model.Skill
		if err := rows.Scan(&sk.ID, &sk.Name); err != nil {
			return nil, err
		}
		out = append(out, sk)
	}
	return out, rows.Err()
}

// AddSkills inserts names that are new and returns one record per non-blank
// name, in input order. Existing names come back unchanged.
func (s *Store) AddSkills(ctx context.Context, names []string) ([]model.Skill, error) {
	out := []model.Skill{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO skills (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, name); err != nil {
				return err
			}
			var sk model.Skill
			if err := tx.QueryRowContext(ctx, `SELECT id, name FROM skills WHERE name = ?`, name).Scan(&sk.ID, &sk.Name); err != nil {
				return err
			}
			out = append(out, sk)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteSkill(ctx context.Context, id int) error {
	return s.deleteByID(ctx, "skills", "Skill", id)
}

// ─── Projects ──────────────────────────────────────────────────────────

const projectColumns = `id, name, description, technologies, url, start_date, end_date, created_at, updated_at`

func scanProject(row scanner) (*model.Project, error) {
	var (
		p                           model.Project
		desc, tech, url, start, end sql.NullString
		createdAt, updatedAt        sql.NullString
	)
	if err := row.Scan(&p.ID, &p.Name, &desc, &tech, &url, &start, &end, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.Description = strPtr(desc)
	p.Technologies = strPtr(tech)
	p.URL = strPtr(url)
	p.StartDate = strPtr(start)
	p.EndDate = strPtr(end)
	p.CreatedAt = strPtr(createdAt)
	p.UpdatedAt = strPtr(updatedAt)
	return &p, nil
}

// ListProjects returns the newest project first.
func (s *Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) GetProject(ctx context.Context, id int) (*model.Project, error) {
	p, err := scanProject(s.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("Project")
	}
	return p, err
}

func (s *Store) CreateProject(ctx context.Context, in model.ProjectInput) (*model.Project, error) {
	id, err := insertProject(ctx, s.db, in)
	if err != nil {
		return nil, err
	}
	return s.GetProject(ctx, id)
}

func insertProject(ctx context.Context, db execer, in model.ProjectInput) (int, error) {
	res, err := db.ExecContext(ctx, `
		INSERT INTO projects (name, description, technologies, url, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		in.Name, nullable(in.Description), nullable(in.Technologies), nullable(in.URL), nullable(in.StartDate), nullable(in.EndDate))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (s *Store) UpdateProject(ctx context.Context, id int, in model.ProjectInput) (*model.Project, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE projects SET
			name = ?, description = ?, technologies = ?, url = ?,
			start_date = ?, end_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		in.Name, nullable(in.Description), nullable(in.Technologies), nullable(in.URL), nullable(in.StartDate), nullable(in.EndDate), id)
	if err != nil {
		return nil, err
	}
	if err := affectedOrNotFound(res, "Project"); err != nil {
		return nil, err
	}
	return s.GetProject(ctx, id)
}

func (s *Store) DeleteProject(ctx context.Context, id int) error {
	return s.deleteByID(ctx, "projects", "Project", id)
}

// ─── Languages ─────────────────────────────────────────────────────────

const languageColumns = `id, name, level, display_order, created_at, updated_at`

func scanLanguage(row scanner) (*model.Language, error) {
	var (
		l                    model.Language
		level                string
		createdAt, updatedAt sql.NullString
	)
	if err := row.Scan(&l.ID, &l.Name, &level, &l.DisplayOrder, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	l.Level = model.CEFRLevel(level)
	l.CreatedAt = strPtr(createdAt)
	l.UpdatedAt = strPtr(updatedAt)
	return &l, nil
}

// ListLanguages returns languages by display order, then id.
func (s *Store) ListLanguages(ctx context.Context) ([]model.Language, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+languageColumns+` FROM languages ORDER BY display_order ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Language{}
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

func (s *Store) GetLanguage(ctx context.Context, id int) (*model.Language, error) {
	l, err := scanLanguage(s.db.QueryRowContext(ctx, `SELECT `+languageColumns+` FROM languages WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("Language")
	}
	return l, err
}

// CreateLanguage appends the language after the current last one.
func (s *Store) CreateLanguage(ctx context.Context, in model.LanguageInput) (*model.Language, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO languages (name, level, display_order)
		VALUES (?, ?, (SELECT COALESCE(MAX(display_order), -1) + 1 FROM languages))`,
		in.Name, string(in.Level))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetLanguage(ctx, int(id))
}

func (s *Store) UpdateLanguage(ctx context.Context, id int, in model.LanguageInput) (*model.Language, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE languages SET name = ?, level = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		in.Name, string(in.Level), id)
	if err != nil {
		return nil, err
	}
	if err := affectedOrNotFound(res, "Language"); err != nil {
		return nil, err
	}
	return s.GetLanguage(ctx, id)
}

func (s *Store) DeleteLanguage(ctx context.Context, id int) error {
	return s.deleteByID(ctx, "languages", "Language", id)
}

// ReorderLanguages applies the new display orders; unknown ids are ignored.
func (s *Store) ReorderLanguages(ctx context.Context, items []model.ReorderItem) ([]model.Language, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, it := range items {
			if _, err := tx.ExecContext(ctx, `UPDATE languages SET display_order = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
				it.DisplayOrder, it.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.ListLanguages(ctx)
}
