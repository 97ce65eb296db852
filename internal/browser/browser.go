// Package browser adapts the two side effects a browser front-end gets for
// free: saving a downloaded file and asking whether the environment offers a
// native month picker.
package browser

import "context"

// Download is a file handed over by the API client.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DownloadSink receives downloads and reports where each one ended up.
type DownloadSink interface {
	Deliver(ctx context.Context, d Download) (string, error)
}

// Prober answers capability questions about the environment.
type Prober interface {
	SupportsMonthInput(ctx context.Context) (bool, error)
}

// StaticProber returns a fixed answer.
type StaticProber struct {
	Supported bool
}

func (p StaticProber) SupportsMonthInput(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return p.Supported, nil
}
