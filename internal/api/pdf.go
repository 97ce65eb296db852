package api

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/raysh454/mycv/internal/browser"
	"github.com/raysh454/mycv/internal/logging"
)

const (
	defaultTemplate    = "classic"
	defaultPDFFilename = "resume.pdf"
)

var dispositionFilename = regexp.MustCompile(`filename="(.+)"`)

// FilenameFromDisposition returns the quoted filename of a
// Content-Disposition header, or "resume.pdf".
func FilenameFromDisposition(disposition string) string {
	if m := dispositionFilename.FindStringSubmatch(disposition); m != nil && m[1] != "" {
		return m[1]
	}
	return defaultPDFFilename
}

// DownloadResumePDF renders resume id on the server and hands the file to the
// configured download sink. Empty template and language mean "classic" and
// "en". It returns where the sink put the file.
func (c *Client) DownloadResumePDF(ctx context.Context, id int, template, language string) (string, error) {
	if template == "" {
		template = defaultTemplate
	}
	if language == "" {
		language = defaultLanguage
	}
	query := url.Values{}
	query.Set("template", template)
	query.Set("language", language)

	path := fmt.Sprintf("/resumes/%d/pdf", id)
	resp, err := c.exchange(ctx, path, RequestOptions{
		Route:   "/resumes/{id}/pdf",
		Query:   query,
		Headers: map[string]string{"Accept": "application/pdf"},
	}, pdfFallbackMessage, false)
	if err != nil {
		return "", err
	}

	dl := browser.Download{
		Filename:    FilenameFromDisposition(resp.Headers.Get("Content-Disposition")),
		ContentType: resp.Headers.Get("Content-Type"),
		Data:        resp.Body,
	}
	location, err := c.sink.Deliver(ctx, dl)
	if err != nil {
		return "", fmt.Errorf("deliver %s: %w", dl.Filename, err)
	}

	c.metrics.RecordDownload(len(dl.Data))
	c.logger.Info("resume pdf delivered",
		logging.Field{Key: "resume_id", Value: id},
		logging.Field{Key: "filename", Value: dl.Filename},
		logging.Field{Key: "bytes", Value: len(dl.Data)},
		logging.Field{Key: "location", Value: location})
	return location, nil
}

// SupportsMonthInput reports whether the environment has a native month
// picker. When it does not, collect months with browser.ParseMonth.
func (c *Client) SupportsMonthInput(ctx context.Context) (bool, error) {
	return c.prober.SupportsMonthInput(ctx)
}
