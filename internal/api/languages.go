package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/raysh454/mycv/internal/model"
)

const (
	routeLanguages = "/languages"
	routeLanguage  = "/languages/{id}"
)

func (c *Client) GetLanguages(ctx context.Context) ([]model.Language, error) {
	return get[[]model.Language](ctx, c, routeLanguages, "/languages")
}

func (c *Client) CreateLanguage(ctx context.Context, data model.LanguageInput) (*model.Language, error) {
	return send[*model.Language](ctx, c, http.MethodPost, routeLanguages, "/languages", data)
}

func (c *Client) UpdateLanguage(ctx context.Context, id int, data model.LanguageInput) (*model.Language, error) {
	return send[*model.Language](ctx, c, http.MethodPut, routeLanguage, fmt.Sprintf("/languages/%d", id), data)
}

func (c *Client) DeleteLanguage(ctx context.Context, id int) error {
	return remove(ctx, c, routeLanguage, fmt.Sprintf("/languages/%d", id))
}

// ReorderLanguages sends items as the bare JSON array and returns the list in
// its new order.
func (c *Client) ReorderLanguages(ctx context.Context, items []model.ReorderItem) ([]model.Language, error) {
	if items == nil {
		items = []model.ReorderItem{}
	}
	return send[[]model.Language](ctx, c, http.MethodPut, "/languages/reorder", "/languages/reorder", items)
}

// OrderFromIDs builds reorder items giving each id its position in ids.
func OrderFromIDs(ids []int) []model.ReorderItem {
	items := make([]model.ReorderItem, len(ids))
	for i, id := range ids {
		items[i] = model.ReorderItem{ID: id, DisplayOrder: i}
	}
	return items
}
