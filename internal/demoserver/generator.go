package demoserver

import (
	"context"
	"math"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"github.com/raysh454/mycv/internal/model"
	"github.com/raysh454/mycv/internal/store"
)

// noWorkExperience is the 400 detail when there is nothing to tailor.
const noWorkExperience = "Your profile needs work experience before you can generate a tailored resume."

const unknownCompany = "Unknown Company"

// knownSkills are recognised in job descriptions even when the user does not
// list them, so missing skills show up as unmatched.
var knownSkills = []string{
	"Go", "Python", "Java", "JavaScript", "TypeScript", "Rust", "C++", "C#", "Ruby", "PHP", "Kotlin", "Swift", "Scala",
	"SQL", "PostgreSQL", "MySQL", "SQLite", "MongoDB", "Redis", "Kafka", "RabbitMQ", "Elasticsearch",
	"Docker", "Kubernetes", "Terraform", "Ansible", "AWS", "GCP", "Azure", "Linux", "Git", "CI/CD",
	"React", "Vue", "Angular", "Svelte", "Node.js", "Django", "FastAPI", "Flask", "Spring",
	"GraphQL", "gRPC", "Microservices", "Machine Learning", "Agile", "Scrum",
}

// preferredMarkers start the part of a posting that lists nice-to-have skills.
var preferredMarkers = []string{"nice to have", "preferred", "bonus", "a plus", "atout", "pluspunt"}

// fold case-folds s. Casers keep state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// profileSnapshot is the profile a resume is generated from.
type profileSnapshot struct {
	user      *model.PersonalInfo
	work      []model.WorkExperience
	education []model.Education
	skills    []model.Skill
	projects  []model.Project
	languages []model.Language
}

func loadProfile(ctx context.Context, st *store.Store) (*profileSnapshot, error) {
	var p profileSnapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { p.user, err = st.GetUser(ctx); return })
	g.Go(func() (err error) { p.work, err = st.ListWorkExperiences(ctx); return })
	g.Go(func() (err error) { p.education, err = st.ListEducation(ctx); return })
	g.Go(func() (err error) { p.skills, err = st.ListSkills(ctx); return })
	g.Go(func() (err error) { p.projects, err = st.ListProjects(ctx); return })
	g.Go(func() (err error) { p.languages, err = st.ListLanguages(ctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &p, nil
}

// tailoring is the result of matching a job description against a profile.
type tailoring struct {
	jobTitle string
	company  string
	score    float64
	analysis model.JobAnalysis
	content  model.ResumeContent
}

// tailor matches skills by whole-word, case-folded search. The score is the
// share of required skills the user has, in percent.
func tailor(jobText string, p *profileSnapshot) tailoring {
	title, company := parseHeading(jobText)
	required, preferred := splitPreferred(jobText)

	has := make(map[string]bool, len(p.skills))
	candidates := append([]string(nil), knownSkills...)
	for _, sk := range p.skills {
		has[fold(sk.Name)] = true
		candidates = append(candidates, sk.Name)
	}

	var (
		analysis = model.JobAnalysis{RequiredSkills: []model.SkillMatch{}, PreferredSkills: []model.SkillMatch{}}
		seen     = map[string]bool{}
		wanted   = map[string]bool{}
		matched  int
	)
	for _, name := range candidates {
		key := fold(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		switch {
		case containsTerm(required, name):
			analysis.RequiredSkills = append(analysis.RequiredSkills, model.SkillMatch{Name: name, Matched: has[key]})
			if has[key] {
				matched++
			}
		case containsTerm(preferred, name):
			analysis.PreferredSkills = append(analysis.PreferredSkills, model.SkillMatch{Name: name, Matched: has[key]})
		default:
			continue
		}
		wanted[key] = true
	}

	var score float64
	if n := len(analysis.RequiredSkills); n > 0 {
		score = math.Round(float64(matched)/float64(n)*1000) / 10
	}

	return tailoring{
		jobTitle: title,
		company:  company,
		score:    score,
		analysis: analysis,
		content:  buildContent(p, wanted),
	}
}

func buildContent(p *profileSnapshot, wanted map[string]bool) model.ResumeContent {
	rc := model.ResumeContent{
		WorkExperiences: []model.ResumeWorkExperience{},
		Skills:          []model.ResumeSkill{},
		Education:       []model.ResumeEducation{},
		Projects:        []model.ResumeProject{},
		Languages:       []model.ResumeLanguage{},
	}
	if p.user != nil {
		rc.PersonalInfo = personalInfoMap(p.user)
		rc.Summary = p.user.Summary
	}

	for _, w := range p.work {
		text := w.Title + " " + deref(w.Description)
		rc.WorkExperiences = append(rc.WorkExperiences, model.ResumeWorkExperience{
			ID:           w.ID,
			Company:      w.Company,
			Title:        w.Title,
			StartDate:    w.StartDate,
			EndDate:      w.EndDate,
			Description:  w.Description,
			MatchReasons: reasons(text, p.skills, wanted),
			Included:     true,
		})
	}
	// most relevant first, keeping the profile order on ties
	sort.SliceStable(rc.WorkExperiences, func(i, j int) bool {
		return len(rc.WorkExperiences[i].MatchReasons) > len(rc.WorkExperiences[j].MatchReasons)
	})
	for i := range rc.WorkExperiences {
		rc.WorkExperiences[i].Order = i + 1
	}

	for _, sk := range p.skills {
		rc.Skills = append(rc.Skills, model.ResumeSkill{Name: sk.Name, Matched: wanted[fold(sk.Name)], Included: true})
	}
	for _, e := range p.education {
		rc.Education = append(rc.Education, model.ResumeEducation{
			ID:             e.ID,
			Institution:    e.Institution,
			Degree:         e.Degree,
			FieldOfStudy:   e.FieldOfStudy,
			GraduationYear: e.GraduationYear,
			Included:       true,
		})
	}
	for _, pr := range p.projects {
		text := pr.Name + " " + deref(pr.Description) + " " + deref(pr.Technologies)
		rc.Projects = append(rc.Projects, model.ResumeProject{
			ID:           pr.ID,
			Name:         pr.Name,
			Description:  pr.Description,
			Technologies: pr.Technologies,
			Included:     len(reasons(text, p.skills, wanted)) > 0,
		})
	}
	for _, l := range p.languages {
		rc.Languages = append(rc.Languages, model.ResumeLanguage{ID: l.ID, Name: l.Name, Level: string(l.Level), Included: true})
	}
	return rc
}

// reasons lists the user's skills that the job wants and text mentions.
func reasons(text string, skills []model.Skill, wanted map[string]bool) []string {
	out := []string{}
	for _, sk := range skills {
		if wanted[fold(sk.Name)] && containsTerm(text, sk.Name) {
			out = append(out, sk.Name)
		}
	}
	return out
}

func personalInfoMap(u *model.PersonalInfo) map[string]any {
	m := map[string]any{
		"full_name": u.FullName,
		"email":     u.Email,
	}
	optional := map[string]*string{
		"phone":        u.Phone,
		"location":     u.Location,
		"linkedin_url": u.LinkedInURL,
		"summary":      u.Summary,
		"photo":        u.Photo,
	}
	for k, v := range optional {
		if v != nil && *v != "" {
			m[k] = *v
		}
	}
	return m
}

// parseHeading reads "Title at Company" or "Title - Company" from the first
// non-blank line.
func parseHeading(text string) (title, company string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, sep := range []string{" at ", " @ ", " - ", " | "} {
			if t, c, ok := strings.Cut(line, sep); ok && strings.TrimSpace(t) != "" && strings.TrimSpace(c) != "" {
				return truncate(strings.TrimSpace(t), 80), truncate(strings.TrimSpace(c), 80)
			}
		}
		return truncate(line, 80), unknownCompany
	}
	return "Untitled", unknownCompany
}

func splitPreferred(text string) (required, preferred string) {
	lower := fold(text)
	cut := -1
	for _, m := range preferredMarkers {
		if i := strings.Index(lower, m); i >= 0 && (cut < 0 || i < cut) {
			cut = i
		}
	}
	if cut < 0 {
		return lower, ""
	}
	return lower[:cut], lower[cut:]
}

// containsTerm reports whether term occurs in text as a whole word, ignoring
// case.
func containsTerm(text, term string) bool {
	t, needle := fold(text), fold(term)
	if needle == "" {
		return false
	}
	for start := 0; ; {
		i := strings.Index(t[start:], needle)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(needle)
		if !wordRune(lastRune(t[:i])) && !wordRune(firstRune(t[end:])) {
			return true
		}
		start = i + 1
	}
}

func wordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#'
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	r := []rune(s)
	if len(r) == 0 {
		return 0
	}
	return r[len(r)-1]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
