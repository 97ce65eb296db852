package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/raysh454/mycv/internal/model"
)

const (
	routeWorkExperiences = "/work-experiences"
	routeWorkExperience  = "/work-experiences/{id}"
)

func (c *Client) GetWorkExperiences(ctx context.Context) ([]model.WorkExperience, error) {
	return get[[]model.WorkExperience](ctx, c, routeWorkExperiences, "/work-experiences")
}

func (c *Client) CreateWorkExperience(ctx context.Context, data model.WorkExperienceInput) (*model.WorkExperience, error) {
	return send[*model.WorkExperience](ctx, c, http.MethodPost, routeWorkExperiences, "/work-experiences", data)
}

func (c *Client) UpdateWorkExperience(ctx context.Context, id int, data model.WorkExperienceInput) (*model.WorkExperience, error) {
	return send[*model.WorkExperience](ctx, c, http.MethodPut, routeWorkExperience, fmt.Sprintf("/work-experiences/%d", id), data)
}

func (c *Client) DeleteWorkExperience(ctx context.Context, id int) error {
	return remove(ctx, c, routeWorkExperience, fmt.Sprintf("/work-experiences/%d", id))
}
