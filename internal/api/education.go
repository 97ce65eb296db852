package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/raysh454/mycv/internal/model"
)

const (
	routeEducationList = "/education"
	routeEducation     = "/education/{id}"
)

func (c *Client) GetEducation(ctx context.Context) ([]model.Education, error) {
	return get[[]model.Education](ctx, c, routeEducationList, "/education")
}

func (c *Client) CreateEducation(ctx context.Context, data model.EducationInput) (*model.Education, error) {
	return send[*model.Education](ctx, c, http.MethodPost, routeEducationList, "/education", data)
}

func (c *Client) UpdateEducation(ctx context.Context, id int, data model.EducationInput) (*model.Education, error) {
	return send[*model.Education](ctx, c, http.MethodPut, routeEducation, fmt.Sprintf("/education/%d", id), data)
}

func (c *Client) DeleteEducation(ctx context.Context, id int) error {
	return remove(ctx, c, routeEducation, fmt.Sprintf("/education/%d", id))
}
