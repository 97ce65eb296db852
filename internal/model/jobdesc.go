package model

// JobDescription is a saved job posting. Editing RawText on the server
// snapshots the previous text as a JobDescriptionVersion.
type JobDescription struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	CompanyName *string `json:"company_name,omitempty"`
	RawText     string  `json:"raw_text"`
	ResumeCount int     `json:"resume_count"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// JobDescriptionListItem adds a short preview of the raw text.
type JobDescriptionListItem struct {
	JobDescription
	RawTextPreview string `json:"raw_text_preview"`
}

// JobDescriptionUpdate only sends the fields that are set.
type JobDescriptionUpdate struct {
	Title   *string `json:"title,omitempty"`
	RawText *string `json:"raw_text,omitempty"`
}

type JobDescriptionVersion struct {
	ID            int    `json:"id"`
	VersionNumber int    `json:"version_number"`
	RawText       string `json:"raw_text"`
	CreatedAt     string `json:"created_at"`
}
