package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/raysh454/mycv/internal/model"
)

const (
	routeResumes = "/resumes"
	routeResume  = "/resumes/{id}"

	defaultLanguage = "en"
)

// GenerateResume asks the server to tailor a resume to a job description.
// jobDescriptionID 0 means "new job description": the id field is then left
// out of the body entirely. An empty language means "en".
func (c *Client) GenerateResume(ctx context.Context, jobDescription string, jobDescriptionID int, language string) (*model.GeneratedResume, error) {
	if language == "" {
		language = defaultLanguage
	}
	payload := model.GenerateResumeRequest{
		JobDescription:   jobDescription,
		JobDescriptionID: jobDescriptionID,
		Language:         language,
	}
	return send[*model.GeneratedResume](ctx, c, http.MethodPost, "/resumes/generate", "/resumes/generate", payload)
}

func (c *Client) GetResumes(ctx context.Context) ([]model.ResumeHistoryItem, error) {
	return get[[]model.ResumeHistoryItem](ctx, c, routeResumes, "/resumes")
}

func (c *Client) GetResume(ctx context.Context, id int) (*model.GeneratedResume, error) {
	return get[*model.GeneratedResume](ctx, c, routeResume, fmt.Sprintf("/resumes/%d", id))
}

// UpdateResume replaces the editable content; the body is {"resume": ...}.
func (c *Client) UpdateResume(ctx context.Context, id int, resume model.ResumeContent) (*model.GeneratedResume, error) {
	return send[*model.GeneratedResume](ctx, c, http.MethodPut, routeResume, fmt.Sprintf("/resumes/%d", id), model.ResumeUpdate{Resume: resume})
}

func (c *Client) DeleteResume(ctx context.Context, id int) error {
	return remove(ctx, c, routeResume, fmt.Sprintf("/resumes/%d", id))
}
