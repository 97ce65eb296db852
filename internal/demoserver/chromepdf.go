package demoserver

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/raysh454/mycv/internal/logging"
)

// pdfRenderer turns a resume document into PDF bytes.
type pdfRenderer interface {
	Render(ctx context.Context, doc *document) ([]byte, error)
}

var resumeHTML = template.Must(template.New("resume").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 10pt; margin: 0; color: #222; }
h1 { font-size: 20pt; margin: 0 0 4pt; }
h2 { font-size: 12pt; margin: 14pt 0 4pt; text-transform: uppercase; }
.contact { color: #555; }
.job h3 { font-size: 11pt; margin: 8pt 0 0; }
.period { color: #666; font-size: 9pt; }
.modern h2, .brussels h2 { color: #1f4e79; border-bottom: 1px solid #1f4e79; }
.eu_classic h1 { text-align: center; }
.eu_classic .contact { text-align: center; }
</style></head>
<body class="{{.Template}}">
<h1>{{.Name}}</h1>
{{with .Contact}}<div class="contact">{{range $i, $c := .}}{{if $i}} | {{end}}{{$c}}{{end}}</div>{{end}}
{{with .Summary}}<h2>{{index $.Labels "Professional Summary"}}</h2><p>{{.}}</p>{{end}}
{{with .Jobs}}<h2>{{index $.Labels "Experience"}}</h2>
{{range .}}<div class="job"><h3>{{.Heading}}</h3><div class="period">{{.Period}}</div>{{with .Description}}<p>{{.}}</p>{{end}}</div>{{end}}{{end}}
{{with .Skills}}<h2>{{index $.Labels "Skills"}}</h2><p>{{range $i, $s := .}}{{if $i}}, {{end}}{{$s}}{{end}}</p>{{end}}
{{with .Education}}<h2>{{index $.Labels "Education"}}</h2>{{range .}}<p>{{.}}</p>{{end}}{{end}}
{{with .Projects}}<h2>{{index $.Labels "Projects"}}</h2>
{{range .}}<div class="job"><h3>{{.Name}}</h3>{{with .Description}}<p>{{.}}</p>{{end}}{{with .Technologies}}<div class="period">{{.}}</div>{{end}}</div>{{end}}{{end}}
{{with .Languages}}<h2>{{index $.Labels "Languages"}}</h2><p>{{range $i, $l := .}}{{if $i}}, {{end}}{{$l}}{{end}}</p>{{end}}
</body></html>`))

// chromeRenderer prints the HTML resume with a headless Chrome. The browser
// starts on first use and is shared until Close.
type chromeRenderer struct {
	headless bool
	logger   logging.Logger

	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

func newChromeRenderer(headless bool, logger logging.Logger) *chromeRenderer {
	return &chromeRenderer{
		headless: headless,
		logger:   logger.With(logging.Field{Key: "component", Value: "chrome_pdf"}),
	}
}

func (c *chromeRenderer) allocator() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.allocCtx == nil {
		opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
		opts = append(opts, chromedp.Flag("headless", c.headless))
		c.allocCtx, c.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}
	return c.allocCtx
}

func (c *chromeRenderer) Render(ctx context.Context, doc *document) ([]byte, error) {
	var html bytes.Buffer
	if err := resumeHTML.Execute(&html, doc); err != nil {
		return nil, fmt.Errorf("render resume html: %w", err)
	}

	tabCtx, cancel := chromedp.NewContext(c.allocator())
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var pdf []byte
	err := chromedp.Run(tabCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html.String()).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("chrome print: %w", err)
	}
	c.logger.Debug("printed resume", logging.Field{Key: "bytes", Value: len(pdf)})
	return pdf, nil
}

func (c *chromeRenderer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.allocCancel != nil {
		c.allocCancel()
		c.allocCtx, c.allocCancel = nil, nil
	}
}

// fallbackRenderer tries primary first and uses the text renderer when it
// fails, so a missing browser never breaks downloads.
type fallbackRenderer struct {
	primary pdfRenderer
	logger  logging.Logger
}

func (f fallbackRenderer) Render(ctx context.Context, doc *document) ([]byte, error) {
	pdf, err := f.primary.Render(ctx, doc)
	if err == nil {
		return pdf, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	f.logger.Warn("chrome pdf failed, using text renderer", logging.Field{Key: "error", Value: err})
	return textRenderer{}.Render(ctx, doc)
}
