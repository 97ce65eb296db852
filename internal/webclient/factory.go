package webclient

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/raysh454/mycv/internal/logging"
)

// BackendConstructor builds a WebClient for one transport backend.
type BackendConstructor func(cfg Config, logger logging.Logger) (WebClient, error)

var (
	backendsMu sync.RWMutex
	backends   = map[Backend]BackendConstructor{}
)

// RegisterBackend makes a backend available to NewWebClient under name
// (case-insensitive). Registering a name again replaces the constructor.
func RegisterBackend(name string, ctor BackendConstructor) {
	b := normalizeBackend(Backend(name))
	if b == "" || ctor == nil {
		return
	}
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[b] = ctor
}

// NewWebClient builds the backend named by cfg.Backend; empty means nethttp.
func NewWebClient(cfg Config, logger logging.Logger) (WebClient, error) {
	if cfg.MaxBodyBytes < 0 {
		return nil, fmt.Errorf("webclient: negative max body size %d", cfg.MaxBodyBytes)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("webclient: negative timeout %s", cfg.Timeout)
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}

	b := normalizeBackend(cfg.Backend)
	if b == "" {
		b = BackendNetHTTP
	}
	cfg.Backend = b

	backendsMu.RLock()
	ctor := backends[b]
	backendsMu.RUnlock()
	if ctor == nil {
		return nil, fmt.Errorf("webclient backend %q not registered (available: %s)", b, strings.Join(ListBackends(), ", "))
	}

	wc, err := ctor(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build webclient backend %q: %w", b, err)
	}
	if wc == nil {
		return nil, errors.New("webclient constructor returned nil")
	}
	return wc, nil
}

// ListBackends returns the registered backend names, sorted.
func ListBackends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	out := make([]string, 0, len(backends))
	for b := range backends {
		out = append(out, string(b))
	}
	sort.Strings(out)
	return out
}

func normalizeBackend(b Backend) Backend {
	return Backend(strings.ToLower(strings.TrimSpace(string(b))))
}
