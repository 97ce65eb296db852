package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/raysh454/mycv/internal/model"
)

const (
	routeProjects = "/projects"
	routeProject  = "/projects/{id}"
)

func (c *Client) GetProjects(ctx context.Context) ([]model.Project, error) {
	return get[[]model.Project](ctx, c, routeProjects, "/projects")
}

func (c *Client) CreateProject(ctx context.Context, data model.ProjectInput) (*model.Project, error) {
	return send[*model.Project](ctx, c, http.MethodPost, routeProjects, "/projects", data)
}

func (c *Client) UpdateProject(ctx context.Context, id int, data model.ProjectInput) (*model.Project, error) {
	return send[*model.Project](ctx, c, http.MethodPut, routeProject, fmt.Sprintf("/projects/%d", id), data)
}

func (c *Client) DeleteProject(ctx context.Context, id int) error {
	return remove(ctx, c, routeProject, fmt.Sprintf("/projects/%d", id))
}
