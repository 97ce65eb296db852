package model

// CEFRLevel is a Common European Framework language proficiency level.
type CEFRLevel string

const (
	LevelA1 CEFRLevel = "A1"
	LevelA2 CEFRLevel = "A2"
	LevelB1 CEFRLevel = "B1"
	LevelB2 CEFRLevel = "B2"
	LevelC1 CEFRLevel = "C1"
	LevelC2 CEFRLevel = "C2"
)

// Valid reports whether l is one of the six CEFR levels.
func (l CEFRLevel) Valid() bool {
	switch l {
	case LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2:
		return true
	}
	return false
}

// PersonalInfo is the single user record held by the server.
type PersonalInfo struct {
	ID          int     `json:"id"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	Location    *string `json:"location,omitempty"`
	LinkedInURL *string `json:"linkedin_url,omitempty"`
	Summary     *string `json:"summary,omitempty"`

	// Photo is a data URL; it is managed through the photos endpoints.
	Photo     *string `json:"photo,omitempty"`
	CreatedAt *string `json:"created_at,omitempty"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

// PersonalInfoInput is the write shape for PUT /personal-info.
type PersonalInfoInput struct {
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	Location    *string `json:"location,omitempty"`
	LinkedInURL *string `json:"linkedin_url,omitempty"`
	Summary     *string `json:"summary,omitempty"`
}

// WorkExperience dates are months formatted YYYY-MM.
type WorkExperience struct {
	ID          int     `json:"id"`
	Company     string  `json:"company"`
	Title       string  `json:"title"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	IsCurrent   bool    `json:"is_current"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	CreatedAt   *string `json:"created_at,omitempty"`
	UpdatedAt   *string `json:"updated_at,omitempty"`
}

type WorkExperienceInput struct {
	Company     string  `json:"company"`
	Title       string  `json:"title"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	IsCurrent   bool    `json:"is_current"`
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
}

type Education struct {
	ID             int      `json:"id"`
	Institution    string   `json:"institution"`
	Degree         string   `json:"degree"`
	FieldOfStudy   *string  `json:"field_of_study,omitempty"`
	GraduationYear *int     `json:"graduation_year,omitempty"`
	GPA            *float64 `json:"gpa,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
	CreatedAt      *string  `json:"created_at,omitempty"`
	UpdatedAt      *string  `json:"updated_at,omitempty"`
}

type EducationInput struct {
	Institution    string   `json:"institution"`
	Degree         string   `json:"degree"`
	FieldOfStudy   *string  `json:"field_of_study,omitempty"`
	GraduationYear *int     `json:"graduation_year,omitempty"`
	GPA            *float64 `json:"gpa,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

type Skill struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Project struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	Technologies *string `json:"technologies,omitempty"`
	URL          *string `json:"url,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	CreatedAt    *string `json:"created_at,omitempty"`
	UpdatedAt    *string `json:"updated_at,omitempty"`
}

type ProjectInput struct {
	Name         string  `json:"name"`
	Description  *string `json:"description,omitempty"`
	Technologies *string `json:"technologies,omitempty"`
	URL          *string `json:"url,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
}

// Language entries are listed by DisplayOrder, then ID.
type Language struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Level        CEFRLevel `json:"level"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    *string   `json:"created_at,omitempty"`
	UpdatedAt    *string   `json:"updated_at,omitempty"`
}

type LanguageInput struct {
	Name  string    `json:"name"`
	Level CEFRLevel `json:"level"`
}

// ReorderItem assigns a new display order to one language.
type ReorderItem struct {
	ID           int `json:"id"`
	DisplayOrder int `json:"display_order"`
}

// Photo carries a base64 data URL (data:image/png;base64,...).
type Photo struct {
	ImageData string `json:"image_data"`
}
