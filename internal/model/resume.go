package model

import "encoding/json"

// GenerateResumeRequest is the body of POST /resumes/generate.
// JobDescriptionID is omitted from the JSON when zero so the server can tell a
// new job description from an existing one by field presence.
type GenerateResumeRequest struct {
	JobDescription   string `json:"job_description"`
	JobDescriptionID int    `json:"job_description_id,omitempty"`
	Language         string `json:"language"`
}

// SkillMatch records whether the user has a skill the job asks for.
type SkillMatch struct {
	Name    string `json:"name"`
	Matched bool   `json:"matched"`
}

type JobAnalysis struct {
	RequiredSkills  []SkillMatch   `json:"required_skills"`
	PreferredSkills []SkillMatch   `json:"preferred_skills"`
	ExperienceYears map[string]any `json:"experience_years,omitempty"`
	Education       map[string]any `json:"education,omitempty"`
}

type ResumeWorkExperience struct {
	ID           int      `json:"id"`
	Company      string   `json:"company"`
	Title        string   `json:"title"`
	StartDate    string   `json:"start_date"`
	EndDate      *string  `json:"end_date,omitempty"`
	Description  *string  `json:"description,omitempty"`
	MatchReasons []string `json:"match_reasons"`
	Included     bool     `json:"included"`
	Order        int      `json:"order"`
}

type ResumeSkill struct {
	Name     string `json:"name"`
	Matched  bool   `json:"matched"`
	Included bool   `json:"included"`
}

type ResumeEducation struct {
	ID             int     `json:"id"`
	Institution    string  `json:"institution"`
	Degree         string  `json:"degree"`
	FieldOfStudy   *string `json:"field_of_study,omitempty"`
	GraduationYear *int    `json:"graduation_year,omitempty"`
	Included       bool    `json:"included"`
}

type ResumeProject struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	Technologies *string `json:"technologies,omitempty"`
	Included     bool    `json:"included"`
}

type ResumeLanguage struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Level    string `json:"level"`
	Included bool   `json:"included"`
}

// ResumeContent is the editable body of a generated resume.
type ResumeContent struct {
	PersonalInfo    map[string]any         `json:"personal_info,omitempty"`
	Summary         *string                `json:"summary,omitempty"`
	WorkExperiences []ResumeWorkExperience `json:"work_experiences"`
	Skills          []ResumeSkill          `json:"skills"`
	Education       []ResumeEducation      `json:"education"`
	Projects        []ResumeProject        `json:"projects"`
	Languages       []ResumeLanguage       `json:"languages"`
}

// MarshalJSON sends absent sections as [] since the server rejects null lists.
func (c ResumeContent) MarshalJSON() ([]byte, error) {
	type plain ResumeContent
	c.WorkExperiences = emptyIfNil(c.WorkExperiences)
	c.Skills = emptyIfNil(c.Skills)
	c.Education = emptyIfNil(c.Education)
	c.Projects = emptyIfNil(c.Projects)
	c.Languages = emptyIfNil(c.Languages)
	return json.Marshal(plain(c))
}

type GeneratedResume struct {
	ID          int            `json:"id"`
	JobTitle    *string        `json:"job_title,omitempty"`
	CompanyName *string        `json:"company_name,omitempty"`
	MatchScore  *float64       `json:"match_score,omitempty"`
	JobAnalysis *JobAnalysis   `json:"job_analysis,omitempty"`
	Resume      *ResumeContent `json:"resume,omitempty"`
	Language    string         `json:"language"`
	CreatedAt   *string        `json:"created_at,omitempty"`
}

// ResumeHistoryItem is the list view of a generated resume.
type ResumeHistoryItem struct {
	ID          int      `json:"id"`
	JobTitle    *string  `json:"job_title,omitempty"`
	CompanyName *string  `json:"company_name,omitempty"`
	MatchScore  *float64 `json:"match_score,omitempty"`
	CreatedAt   *string  `json:"created_at,omitempty"`
}

// ResumeUpdate is the body of PUT /resumes/{id}.
type ResumeUpdate struct {
	Resume ResumeContent `json:"resume"`
}
