package webclient

import (
	"context"

	"github.com/raysh454/mycv/internal/model"
)

// WebClient executes one HTTP exchange. Implementations return a Response for
// every status code and an error only when no response was received.
type WebClient interface {
	Do(ctx context.Context, req *model.Request) (*model.Response, error)

	Close() error
}
