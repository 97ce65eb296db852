package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/raysh454/mycv/internal/api"
	"github.com/raysh454/mycv/internal/model"
)

func (a *app) personalCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "personal",
		Short: "Show or replace your personal info",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Print personal info (null when none is saved)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := a.client.GetPersonalInfo(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(info)
		},
	}

	var file string
	set := &cobra.Command{
		Use:   "set",
		Short: "Create or replace personal info from a JSON/YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := decodeInput[model.PersonalInfoInput](a, file)
			if err != nil {
				return err
			}
			info, err := a.client.UpdatePersonalInfo(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(info)
		},
	}
	addFileFlag(set, &file, "personal info document (full_name, email, ...)")

	cmd.AddCommand(get, set)
	return cmd
}

// section is the CRUD surface shared by experiences, education and projects.
type section[T, In any] struct {
	use, short, noun string

	list   func(*api.Client, context.Context) ([]T, error)
	create func(*api.Client, context.Context, In) (*T, error)
	update func(*api.Client, context.Context, int, In) (*T, error)
	remove func(*api.Client, context.Context, int) error
}

func sectionCommand[T, In any](a *app, s section[T, In]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   s.use,
		Short: s.short,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List " + s.noun + " entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := s.list(a.client, cmd.Context())
			if err != nil {
				return err
			}
			return a.print(items)
		},
	}

	var createFile string
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a " + s.noun + " entry from a JSON/YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := decodeInput[In](a, createFile)
			if err != nil {
				return err
			}
			item, err := s.create(a.client, cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(item)
		},
	}
	addFileFlag(create, &createFile, s.noun+" document")

	var updateFile string
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Replace a " + s.noun + " entry from a JSON/YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			in, err := decodeInput[In](a, updateFile)
			if err != nil {
				return err
			}
			item, err := s.update(a.client, cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return a.print(item)
		},
	}
	addFileFlag(update, &updateFile, s.noun+" document")

	cmd.AddCommand(list, create, update, deleteCommand(a, s.noun, s.remove))
	return cmd
}

func deleteCommand(a *app, noun string, remove func(*api.Client, context.Context, int) error) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := remove(a.client, cmd.Context(), id); err != nil {
				return err
			}
			return a.print(map[string]int{"deleted": id})
		},
	}
}

func (a *app) experiencesCommand() *cobra.Command {
	return sectionCommand(a, section[model.WorkExperience, model.WorkExperienceInput]{
		use:    "experiences",
		short:  "Manage work experience",
		noun:   "work experience",
		list:   (*api.Client).GetWorkExperiences,
		create: (*api.Client).CreateWorkExperience,
		update: (*api.Client).UpdateWorkExperience,
		remove: (*api.Client).DeleteWorkExperience,
	})
}

func (a *app) educationCommand() *cobra.Command {
	return sectionCommand(a, section[model.Education, model.EducationInput]{
		use:    "education",
		short:  "Manage education",
		noun:   "education",
		list:   (*api.Client).GetEducation,
		create: (*api.Client).CreateEducation,
		update: (*api.Client).UpdateEducation,
		remove: (*api.Client).DeleteEducation,
	})
}

func (a *app) projectsCommand() *cobra.Command {
	return sectionCommand(a, section[model.Project, model.ProjectInput]{
		use:    "projects",
		short:  "Manage projects",
		noun:   "project",
		list:   (*api.Client).GetProjects,
		create: (*api.Client).CreateProject,
		update: (*api.Client).UpdateProject,
		remove: (*api.Client).DeleteProject,
	})
}

func (a *app) languagesCommand() *cobra.Command {
	cmd := sectionCommand(a, section[model.Language, model.LanguageInput]{
		use:    "languages",
		short:  "Manage spoken languages",
		noun:   "language",
		list:   (*api.Client).GetLanguages,
		create: (*api.Client).CreateLanguage,
		update: (*api.Client).UpdateLanguage,
		remove: (*api.Client).DeleteLanguage,
	})

	reorder := &cobra.Command{
		Use:   "reorder ID...",
		Short: "Set the display order: the first ID is shown first",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}
			langs, err := a.client.ReorderLanguages(cmd.Context(), api.OrderFromIDs(ids))
			if err != nil {
				return err
			}
			return a.print(langs)
		},
	}
	cmd.AddCommand(reorder)
	return cmd
}

func (a *app) skillsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skills",
		Short: "Manage skills",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			skills, err := a.client.GetSkills(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(skills)
		},
	}

	add := &cobra.Command{
		Use:   "add NAME...",
		Short: "Add skills; names the server already knows are returned as-is",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			skills, err := a.client.CreateSkills(cmd.Context(), args)
			if err != nil {
				return err
			}
			return a.print(skills)
		},
	}

	cmd.AddCommand(list, add, deleteCommand(a, "skill", (*api.Client).DeleteSkill))
	return cmd
}

func (a *app) photoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photo",
		Short: "Manage the profile photo",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Print the photo data URL (null when none is set)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			photo, err := a.client.GetPhoto(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(photo)
		},
	}

	var contentType string
	upload := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a JPEG, PNG or WebP image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readFile(args[0])
			if err != nil {
				return err
			}
			dataURL, err := api.PhotoDataURL(contentType, data)
			if err != nil {
				return err
			}
			photo, err := a.client.UploadPhoto(cmd.Context(), dataURL)
			if err != nil {
				return err
			}
			a.note("Uploaded %s (%s, %s encoded)", displayName(args[0]),
				humanize.Bytes(uint64(len(data))), humanize.Bytes(uint64(len(dataURL))))
			return a.print(photo)
		},
	}
	upload.Flags().StringVar(&contentType, "content-type", "", "image type (default: detected from the file)")

	del := &cobra.Command{
		Use:   "delete",
		Short: "Remove the photo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.client.DeletePhoto(cmd.Context()); err != nil {
				return err
			}
			return a.print(map[string]bool{"deleted": true})
		},
	}

	cmd.AddCommand(get, upload, del)
	return cmd
}

func (a *app) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Whole-profile operations",
	}

	complete := &cobra.Command{
		Use:   "complete",
		Short: "Print every profile section in one document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := a.client.GetCompleteProfile(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(profile)
		},
	}

	var importFile string
	imp := &cobra.Command{
		Use:   "import",
		Short: "Replace every section except the photo from a JSON/YAML file",
		Long: `Replace every section except the photo from a JSON/YAML file.

The document has the shape printed by "profile complete" and written by
"profile export", so an export can be edited and imported back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := decodeInput[model.ProfileImport](a, importFile)
			if err != nil {
				return err
			}
			res, err := a.client.ImportProfile(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.print(res)
		},
	}
	addFileFlag(imp, &importFile, "profile document")

	var exportFile string
	export := &cobra.Command{
		Use:   "export",
		Short: "Save the complete profile as JSON, or YAML for .yaml/.yml files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := a.client.GetCompleteProfile(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.writeDocument(exportFile, profile); err != nil {
				return err
			}
			if exportFile != "-" {
				a.note("Exported profile to %s", exportFile)
			}
			return nil
		},
	}
	addFileFlag(export, &exportFile, "destination file, - for stdout")

	cmd.AddCommand(complete, imp, export)
	return cmd
}

func requireArgsMsg(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%s expects %s", cmd.CommandPath(), what)
		}
		return nil
	}
}
