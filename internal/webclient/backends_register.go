package webclient

import "github.com/raysh454/mycv/internal/logging"

func init() {
	RegisterBackend(string(BackendNetHTTP), func(cfg Config, logger logging.Logger) (WebClient, error) {
		return NewNetHTTPClient(cfg, logger, nil)
	})
}
