package api

import (
	"context"
	"net/http"

	"github.com/raysh454/mycv/internal/model"
)

// GetPersonalInfo returns nil when the server has no user record yet.
func (c *Client) GetPersonalInfo(ctx context.Context) (*model.PersonalInfo, error) {
	return get[*model.PersonalInfo](ctx, c, "/personal-info", "/personal-info")
}

// UpdatePersonalInfo creates or replaces the user record.
func (c *Client) UpdatePersonalInfo(ctx context.Context, data model.PersonalInfoInput) (*model.PersonalInfo, error) {
	return send[*model.PersonalInfo](ctx, c, http.MethodPut, "/personal-info", "/personal-info", data)
}
