package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/raysh454/mycv/internal/api"
	"github.com/raysh454/mycv/internal/browser"
	"github.com/raysh454/mycv/internal/jdversions"
	"github.com/raysh454/mycv/internal/model"
)

func (a *app) resumesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resumes",
		Aliases: []string{"resume"},
		Short:   "Generate, edit and download tailored resumes",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List generated resumes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := a.client.GetResumes(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(items)
		},
	}

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Print a generated resume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			r, err := a.client.GetResume(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.print(r)
		},
	}

	var updateFile string
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Replace the content of a resume from a JSON/YAML file",
		Long: `Replace the content of a resume from a JSON/YAML file.

The file holds the "resume" object printed by "resumes get" (work_experiences,
skills, education, projects, languages, summary). Personal info is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			content, err := decodeInput[model.ResumeContent](a, updateFile)
			if err != nil {
				return err
			}
			r, err := a.client.UpdateResume(cmd.Context(), id, content)
			if err != nil {
				return err
			}
			return a.print(r)
		},
	}
	addFileFlag(update, &updateFile, "resume content document")

	var (
		postingFile string
		jdID        int
		genLang     string
	)
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Tailor a resume to a job posting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := a.readText(postingFile)
			if err != nil {
				return err
			}
			lang := genLang
			if lang == "" {
				lang = a.cfg.Language
			}
			r, err := a.client.GenerateResume(cmd.Context(), text, jdID, lang)
			if err != nil {
				return err
			}
			return a.print(r)
		},
	}
	addFileFlag(generate, &postingFile, "job posting as plain text, - for stdin")
	generate.Flags().IntVar(&jdID, "jd", 0, "attach to this saved job description instead of creating one")
	generate.Flags().StringVar(&genLang, "lang", "", "resume language: en, fr or nl (default from config)")

	var pdfTemplate, pdfLang string
	pdf := &cobra.Command{
		Use:   "pdf ID",
		Short: "Download a resume as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			template := pdfTemplate
			if template == "" {
				template = a.cfg.Template
			}
			lang := pdfLang
			if lang == "" {
				lang = a.cfg.Language
			}
			location, err := a.client.DownloadResumePDF(cmd.Context(), id, template, lang)
			if err != nil {
				return err
			}
			out := map[string]any{"location": location}
			if fi, err := os.Stat(location); err == nil {
				out["size"] = fi.Size()
				a.note("Saved %s (%s)", location, humanize.Bytes(uint64(fi.Size())))
			}
			return a.print(out)
		},
	}
	pdf.Flags().StringVar(&pdfTemplate, "template", "", "classic, modern, brussels or eu_classic (default from config)")
	pdf.Flags().StringVar(&pdfLang, "lang", "", "label language: en, fr or nl (default from config)")
	pdf.Flags().StringVar(&a.downloadDir, "dir", "", "download directory (default from config)")

	cmd.AddCommand(list, get, update, deleteCommand(a, "resume", (*api.Client).DeleteResume), generate, pdf)
	return cmd
}

func (a *app) jobDescriptionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jd",
		Aliases: []string{"job-descriptions"},
		Short:   "Manage saved job descriptions and their versions",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List job descriptions, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := a.client.GetJobDescriptions(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(items)
		},
	}

	var createFile string
	create := &cobra.Command{
		Use:   "create",
		Short: "Save a job posting from a plain-text file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := a.readText(createFile)
			if err != nil {
				return err
			}
			jd, err := a.client.CreateJobDescription(cmd.Context(), text)
			if err != nil {
				return err
			}
			return a.print(jd)
		},
	}
	addFileFlag(create, &createFile, "job posting as plain text, - for stdin")

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Print a job description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			jd, err := a.client.GetJobDescription(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.print(jd)
		},
	}

	var updateFile string
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change the title and/or text from a JSON/YAML file",
		Long: `Change the title and/or text from a JSON/YAML file holding "title"
and/or "raw_text". A changed text keeps the previous one as a version.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			in, err := decodeInput[model.JobDescriptionUpdate](a, updateFile)
			if err != nil {
				return err
			}
			jd, err := a.client.UpdateJobDescription(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return a.print(jd)
		},
	}
	addFileFlag(update, &updateFile, "update document")

	resumes := &cobra.Command{
		Use:   "resumes ID",
		Short: "List the resumes generated for a job description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			items, err := a.client.GetJobDescriptionResumes(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.print(items)
		},
	}

	versions := &cobra.Command{
		Use:   "versions ID",
		Short: "List the saved versions of a job description, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			items, err := a.client.GetJobDescriptionVersions(cmd.Context(), id)
			if err != nil {
				return err
			}
			return a.print(items)
		},
	}

	restore := &cobra.Command{
		Use:   "restore ID VERSION_ID",
		Short: "Make a saved version the current text",
		Args:  requireArgsMsg(2, "a job description id and a version id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			jd, err := a.client.RestoreJobDescriptionVersion(cmd.Context(), ids[0], ids[1])
			if err != nil {
				return err
			}
			return a.print(jd)
		},
	}

	cmd.AddCommand(list, create, get, update, deleteCommand(a, "job description", (*api.Client).DeleteJobDescription),
		resumes, versions, restore, a.jdDiffCommand())
	return cmd
}

func (a *app) jdDiffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff ID BASE [HEAD]",
		Short: "Show line changes between two version numbers",
		Long: `Show line changes between two version numbers of a job description.
Without HEAD the base version is compared with the current text.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			versions, err := a.client.GetJobDescriptionVersions(ctx, ids[0])
			if err != nil {
				return err
			}

			var res *jdversions.Result
			if len(ids) == 3 {
				res, err = jdversions.Compare(versions, ids[1], ids[2])
				if err != nil {
					return err
				}
			} else {
				jd, err := a.client.GetJobDescription(ctx, ids[0])
				if err != nil {
					return err
				}
				current := model.JobDescriptionVersion{VersionNumber: currentVersion(versions), RawText: jd.RawText}
				res, err = jdversions.Compare(append(versions, current), ids[1], current.VersionNumber)
				if err != nil {
					return err
				}
			}

			if a.format() == "json" {
				return a.print(res)
			}
			return res.Render(a.opts.Stdout)
		},
	}
}

// currentVersion numbers the live text one past the newest snapshot.
func currentVersion(versions []model.JobDescriptionVersion) int {
	n := 0
	for _, v := range versions {
		if v.VersionNumber > n {
			n = v.VersionNumber
		}
	}
	return n + 1
}

func (a *app) probeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Check what the local environment supports",
	}

	var useChrome bool
	month := &cobra.Command{
		Use:   "month [VALUE]",
		Short: "Report native month-picker support and normalise a month",
		Long: `Report whether a native month picker is available. With --chrome the
answer comes from a headless Chrome; otherwise the CLI has none. When VALUE is
given it is parsed the way manual month entry is ("2024-3", "03/2024") and
printed as YYYY-MM.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var prober browser.Prober = browser.StaticProber{}
			if useChrome {
				cp := browser.NewChromeProber(a.cfg.ChromeHeadless, a.logger)
				defer cp.Close()
				prober = cp
			}
			supported, err := prober.SupportsMonthInput(cmd.Context())
			if err != nil {
				return fmt.Errorf("probe month input: %w", err)
			}

			out := map[string]any{"month_input": supported}
			if len(args) == 1 {
				value, err := browser.ParseMonth(args[0])
				if err != nil {
					return err
				}
				out["value"] = value
			}
			return a.print(out)
		},
	}
	month.Flags().BoolVar(&useChrome, "chrome", false, "ask a headless Chrome instead of assuming no picker")

	cmd.AddCommand(month)
	return cmd
}
