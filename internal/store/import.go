package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/raysh454/mycv/internal/model"
)

// ImportedMessage is reported after a successful ImportProfile.
const ImportedMessage = "Profile imported successfully"

// CompleteProfile returns every profile section. Personal info is nil
// until it has been created.
func (s *Store) CompleteProfile(ctx context.Context) (*model.CompleteProfile, error) {
	user, err := s.GetUser(ctx)
	if err != nil {
		return nil, err
	}
	work, err := s.ListWorkExperiences(ctx)
	if err != nil {
		return nil, err
	}
	edu, err := s.ListEducation(ctx)
	if err != nil {
		return nil, err
	}
	skills, err := s.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	langs, err := s.ListLanguages(ctx)
	if err != nil {
		return nil, err
	}

	out := &model.CompleteProfile{}
	if user != nil {
		if err := remarshal(user, &out.PersonalInfo); err != nil {
			return nil, err
		}
	}
	sections := []struct {
		in  any
		out *[]map[string]any
	}{
		{work, &out.WorkExperiences},
		{edu, &out.Education},
		{skills, &out.Skills},
		{projects, &out.Projects},
		{langs, &out.Languages},
	}
	for _, sec := range sections {
		if err := remarshal(sec.in, sec.out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func remarshal(in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return json.Unmarshal(b, out)
}

// ImportProfile replaces the profile in one transaction. The photo and the
// job descriptions are left alone.
func (s *Store) ImportProfile(ctx context.Context, in model.ProfileImport) (*model.ProfileImportResult, error) {
	counts := map[string]int{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"work_experiences", "education", "skills", "projects", "languages"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		if err := upsertUser(ctx, tx, in.PersonalInfo); err != nil {
			return err
		}
		for _, w := range in.WorkExperiences {
			if _, err := insertWork(ctx, tx, w); err != nil {
				return err
			}
		}
		for _, e := range in.Education {
			if _, err := insertEducation(ctx, tx, e); err != nil {
				return err
			}
		}
		skills := 0
		for _, sk := range in.Skills {
			res, err := tx.ExecContext(ctx, `INSERT INTO skills (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, sk.Name)
			if err != nil {
				return err
			}
			if n, _ := res.RowsAffected(); n > 0 {
				skills++
			}
		}
		for _, p := range in.Projects {
			if _, err := insertProject(ctx, tx, p); err != nil {
				return err
			}
		}
		for i, l := range in.Languages {
			if _, err := tx.ExecContext(ctx, `INSERT INTO languages (name, level, display_order) VALUES (?, ?, ?)`,
				l.Name, string(l.Level), i); err != nil {
				return err
			}
		}

		counts["work_experiences"] = len(in.WorkExperiences)
		counts["education"] = len(in.Education)
		counts["skills"] = skills
		counts["projects"] = len(in.Projects)
		counts["languages"] = len(in.Languages)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("profile imported")
	return &model.ProfileImportResult{Message: ImportedMessage, Counts: counts}, nil
}
