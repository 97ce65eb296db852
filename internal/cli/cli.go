// Package cli implements the mycv command line. Every command is a thin shell
// over one api.Client call: inputs come from flags, arguments or a JSON/YAML
// file, and the server's JSON answer is printed as-is.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/raysh454/mycv/internal/api"
	"github.com/raysh454/mycv/internal/browser"
	"github.com/raysh454/mycv/internal/config"
	"github.com/raysh454/mycv/internal/logging"
	"github.com/raysh454/mycv/internal/metrics"
	"github.com/raysh454/mycv/internal/webclient"
)

// Options wires the command to its environment. Zero values mean the process
// defaults (os.Stdin/Stdout/Stderr, the configured transport and download
// directory).
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// WebClient replaces the transport built from the config.
	WebClient webclient.WebClient

	// Sink replaces the file sink in the download directory.
	Sink browser.DownloadSink
}

// app is the state shared by all subcommands of one invocation.
type app struct {
	opts Options

	// global flags
	configPath  string
	baseURL     string
	timeout     time.Duration
	logLevel    string
	output      string
	dumpMetrics bool

	// pdf --dir, read during setup
	downloadDir string

	cfg     *config.Config
	logger  logging.Logger
	metrics *metrics.Manager
	client  *api.Client
}

// NewRootCommand builds the mycv command tree. Callers running it directly
// skip the exit teardown; Execute does it for them.
func NewRootCommand(opts Options) *cobra.Command {
	root, _ := newRoot(opts)
	return root
}

func newRoot(opts Options) (*cobra.Command, *app) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:   "mycv",
		Short: "Command line client for the MyCV resume builder",
		Long: `mycv talks to a MyCV server: it manages your profile, saved job
descriptions and the resumes generated for them, and downloads resume PDFs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetIn(opts.Stdin)
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file (default $MYCV_CONFIG)")
	pf.StringVar(&a.baseURL, "base-url", "", "API root, e.g. http://localhost:8000/api")
	pf.DurationVar(&a.timeout, "timeout", 0, "timeout for each HTTP exchange")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVarP(&a.output, "output", "o", "", "json or table (default: table on a terminal, json otherwise)")
	pf.BoolVar(&a.dumpMetrics, "metrics", false, "print client metrics to stderr on exit")

	root.AddCommand(
		a.personalCommand(),
		a.experiencesCommand(),
		a.educationCommand(),
		a.projectsCommand(),
		a.skillsCommand(),
		a.languagesCommand(),
		a.photoCommand(),
		a.profileCommand(),
		a.resumesCommand(),
		a.jobDescriptionsCommand(),
		a.probeCommand(),
	)
	return root, a
}

// Execute runs the command tree with args and returns the process exit code.
// Failures are reported on stderr with the server's detail message. The
// metrics dump and client shutdown run whether or not the command failed.
func Execute(ctx context.Context, args []string, opts Options) int {
	root, a := newRoot(opts)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if terr := a.teardown(); err == nil {
		err = terr
	}
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		var reqErr *api.RequestError
		if errors.As(err, &reqErr) && reqErr.Kind == api.KindNetwork {
			return 3
		}
		return 1
	}
	return 0
}

// setup loads the config, applies flag overrides and builds the client.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context(), a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = a.baseURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if a.downloadDir != "" {
		cfg.DownloadDir = a.downloadDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	switch a.output {
	case "", "json", "table":
	default:
		return fmt.Errorf("unknown output format %q (want json or table)", a.output)
	}
	a.cfg = cfg

	level, _ := logging.ParseLevel(cfg.LogLevel)
	a.logger = logging.NewLogger(a.opts.Stderr, "mycv", level)
	a.metrics = metrics.NewManager(metrics.WithNamespace(cfg.MetricsNamespace))

	wc := a.opts.WebClient
	if wc == nil {
		maxBody, err := cfg.MaxDownloadBytes()
		if err != nil {
			return err
		}
		wc, err = webclient.NewWebClient(webclient.Config{
			Backend:      webclient.BackendNetHTTP,
			Timeout:      cfg.Timeout,
			MaxBodyBytes: maxBody,
			CookieJar:    true,
			UserAgent:    "mycv-cli",
		}, a.logger)
		if err != nil {
			return err
		}
	}

	sink := a.opts.Sink
	if sink == nil {
		sink = browser.NewFileSink(cfg.DownloadDir)
	}

	a.client, err = api.New(cfg.BaseURL, wc,
		api.WithLogger(a.logger),
		api.WithMetrics(a.metrics),
		api.WithDownloadSink(sink),
	)
	return err
}

// teardown is a no-op when setup never built the client.
func (a *app) teardown() error {
	if a.client == nil {
		return nil
	}
	var dumpErr error
	if a.dumpMetrics {
		dumpErr = a.writeMetrics(a.opts.Stderr)
	}
	return errors.Join(dumpErr, a.client.Close())
}

func (a *app) writeMetrics(w io.Writer) error {
	families, err := a.metrics.Registry().Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, s := range args {
		id, err := parseID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
