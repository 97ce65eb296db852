package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/raysh454/mycv/internal/model"
)

func (c *Client) GetSkills(ctx context.Context) ([]model.Skill, error) {
	return get[[]model.Skill](ctx, c, "/skills", "/skills")
}

// CreateSkills adds several skills at once; the body is {"names": [...]}.
// The server returns existing records for names it already knows.
func (c *Client) CreateSkills(ctx context.Context, names []string) ([]model.Skill, error) {
	if names == nil {
		names = []string{}
	}
	payload := struct {
		Names []string `json:"names"`
	}{Names: names}
	return send[[]model.Skill](ctx, c, http.MethodPost, "/skills", "/skills", payload)
}

func (c *Client) DeleteSkill(ctx context.Context, id int) error {
	return remove(ctx, c, "/skills/{id}", fmt.Sprintf("/skills/%d", id))
}
