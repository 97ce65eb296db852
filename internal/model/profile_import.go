package model

import "encoding/json"

// CompleteProfile is everything the server knows about the user, as returned
// by GET /profile/complete. It is also the shape the CLI exports.
type CompleteProfile struct {
	PersonalInfo    map[string]any   `json:"personal_info"`
	WorkExperiences []map[string]any `json:"work_experiences"`
	Education       []map[string]any `json:"education"`
	Skills          []map[string]any `json:"skills"`
	Projects        []map[string]any `json:"projects"`
	Languages       []map[string]any `json:"languages"`
}

type SkillImport struct {
	Name string `json:"name"`
}

// ProfileImport replaces every profile section except the photo.
type ProfileImport struct {
	PersonalInfo    PersonalInfoInput     `json:"personal_info"`
	WorkExperiences []WorkExperienceInput `json:"work_experiences"`
	Education       []EducationInput      `json:"education"`
	Skills          []SkillImport         `json:"skills"`
	Projects        []ProjectInput        `json:"projects"`
	Languages       []LanguageInput       `json:"languages"`
}

// MarshalJSON sends absent sections as [] since the server rejects null lists.
func (p ProfileImport) MarshalJSON() ([]byte, error) {
	type plain ProfileImport
	p.WorkExperiences = emptyIfNil(p.WorkExperiences)
	p.Education = emptyIfNil(p.Education)
	p.Skills = emptyIfNil(p.Skills)
	p.Projects = emptyIfNil(p.Projects)
	p.Languages = emptyIfNil(p.Languages)
	return json.Marshal(plain(p))
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

type ProfileImportResult struct {
	Message string         `json:"message"`
	Counts  map[string]int `json:"counts"`
}
