package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/raysh454/mycv/internal/model"
)

const (
	routeJobDescriptions = "/job-descriptions"
	routeJobDescription  = "/job-descriptions/{id}"
)

func (c *Client) GetJobDescriptions(ctx context.Context) ([]model.JobDescriptionListItem, error) {
	return get[[]model.JobDescriptionListItem](ctx, c, routeJobDescriptions, "/job-descriptions")
}

// CreateJobDescription saves raw posting text; the body is {"raw_text": ...}.
func (c *Client) CreateJobDescription(ctx context.Context, rawText string) (*model.JobDescription, error) {
	payload := struct {
		RawText string `json:"raw_text"`
	}{RawText: rawText}
	return send[*model.JobDescription](ctx, c, http.MethodPost, routeJobDescriptions, "/job-descriptions", payload)
}

func (c *Client) GetJobDescription(ctx context.Context, id int) (*model.JobDescription, error) {
	return get[*model.JobDescription](ctx, c, routeJobDescription, fmt.Sprintf("/job-descriptions/%d", id))
}

func (c *Client) UpdateJobDescription(ctx context.Context, id int, data model.JobDescriptionUpdate) (*model.JobDescription, error) {
	return send[*model.JobDescription](ctx, c, http.MethodPut, routeJobDescription, fmt.Sprintf("/job-descriptions/%d", id), data)
}

// DeleteJobDescription also removes the resumes generated from it.
func (c *Client) DeleteJobDescription(ctx context.Context, id int) error {
	return remove(ctx, c, routeJobDescription, fmt.Sprintf("/job-descriptions/%d", id))
}

func (c *Client) GetJobDescriptionResumes(ctx context.Context, id int) ([]model.ResumeHistoryItem, error) {
	return get[[]model.ResumeHistoryItem](ctx, c, "/job-descriptions/{id}/resumes", fmt.Sprintf("/job-descriptions/%d/resumes", id))
}

func (c *Client) GetJobDescriptionVersions(ctx context.Context, id int) ([]model.JobDescriptionVersion, error) {
	return get[[]model.JobDescriptionVersion](ctx, c, "/job-descriptions/{id}/versions", fmt.Sprintf("/job-descriptions/%d/versions", id))
}

// RestoreJobDescriptionVersion is a POST without a body.
func (c *Client) RestoreJobDescriptionVersion(ctx context.Context, jdID, versionID int) (*model.JobDescription, error) {
	return send[*model.JobDescription](ctx, c, http.MethodPost,
		"/job-descriptions/{id}/versions/{vid}/restore",
		fmt.Sprintf("/job-descriptions/%d/versions/%d/restore", jdID, versionID), nil)
}
