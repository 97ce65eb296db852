package webclient_test

import (
	"context"
	"errors"
	"testing"

	"github.com/raysh454/mycv/internal/logging"
	"github.com/raysh454/mycv/internal/model"
	"github.com/raysh454/mycv/internal/webclient"
)

type stubClient struct{}

func (stubClient) Do(context.Context, *model.Request) (*model.Response, error) {
	return &model.Response{StatusCode: 204}, nil
}
func (stubClient) Close() error { return nil }

// TestNewWebClient_DefaultBackend verifies that empty backend defaults to nethttp
func TestNewWebClient_DefaultBackend(t *testing.T) {
	t.Parallel()
	client, err := webclient.NewWebClient(webclient.Config{}, logging.NopLogger{})
	if err != nil {
		t.Fatalf("Failed to create default client: %v", err)
	}
	if _, ok := client.(*webclient.NetHTTPClient); !ok {
		t.Fatalf("expected *NetHTTPClient, got %T", client)
	}
	defer client.Close()
}

func TestNewWebClient_UnknownBackend(t *testing.T) {
	t.Parallel()
	_, err := webclient.NewWebClient(webclient.Config{Backend: "carrier-pigeon"}, logging.NopLogger{})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestRegisterBackend_CustomBackendIsUsed(t *testing.T) {
	t.Parallel()
	webclient.RegisterBackend("Stub-Factory", func(webclient.Config, logging.Logger) (webclient.WebClient, error) {
		return stubClient{}, nil
	})

	client, err := webclient.NewWebClient(webclient.Config{Backend: "stub-factory"}, logging.NopLogger{})
	if err != nil {
		t.Fatalf("NewWebClient: %v", err)
	}
	if _, ok := client.(stubClient); !ok {
		t.Fatalf("expected stubClient, got %T", client)
	}

	found := false
	for _, name := range webclient.ListBackends() {
		if name == "stub-factory" {
			found = true
		}
	}
	if !found {
		t.Errorf("stub-factory missing from ListBackends: %v", webclient.ListBackends())
	}
}

func TestNewWebClient_ConstructorErrorIsWrapped(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	webclient.RegisterBackend("failing", func(webclient.Config, logging.Logger) (webclient.WebClient, error) {
		return nil, boom
	})

	_, err := webclient.NewWebClient(webclient.Config{Backend: "failing"}, logging.NopLogger{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped constructor error, got %v", err)
	}
}

func TestNewWebClient_RejectsNegativeLimits(t *testing.T) {
	t.Parallel()
	cases := []webclient.Config{
		{MaxBodyBytes: -1},
		{Timeout: -1},
	}
	for _, cfg := range cases {
		if _, err := webclient.NewWebClient(cfg, nil); err == nil {
			t.Errorf("NewWebClient(%+v): expected error", cfg)
		}
	}
}
