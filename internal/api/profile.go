package api

import (
	"context"
	"net/http"

	"github.com/raysh454/mycv/internal/model"
)

func (c *Client) GetCompleteProfile(ctx context.Context) (*model.CompleteProfile, error) {
	return get[*model.CompleteProfile](ctx, c, "/profile/complete", "/profile/complete")
}

// ImportProfile replaces every profile section except the photo.
func (c *Client) ImportProfile(ctx context.Context, data model.ProfileImport) (*model.ProfileImportResult, error) {
	return send[*model.ProfileImportResult](ctx, c, http.MethodPut, "/profile/import", "/profile/import", data)
}
