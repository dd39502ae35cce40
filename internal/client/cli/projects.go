package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	"github.com/dmitrijs2005/vidbatch/internal/client/services"
)

func (a *App) projectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Browse and download finished projects",
	}
	cmd.AddCommand(
		a.projectsListCommand(),
		a.projectsShowCommand(),
		a.projectsURLsCommand(),
		a.projectsDeleteCommand(),
		a.projectsDownloadCommand(),
	)
	return cmd
}

func (a *App) projectsListCommand() *cobra.Command {
	var (
		limit   int
		deleted bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := a.projects.List(cmd.Context(), limit, deleted)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				a.println("No projects.")
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tVIDEOS\tSIZE\tCREATED")
			for _, p := range list {
				name := p.Name
				if p.IsDeleted() {
					name += " (deleted)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", p.ID, name, p.VideoCount, humanSize(p.TotalSizeBytes), p.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", services.DefaultProjectLimit, fmt.Sprintf("maximum projects to list (up to %d)", services.MaxProjectLimit))
	cmd.Flags().BoolVar(&deleted, "deleted", false, "include soft-deleted projects")
	return cmd
}

func (a *App) projectsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.projects.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printProject(p)
			return nil
		},
	}
}

func (a *App) printProject(p models.Project) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(tw, "%s:\t%s\n", k, v)
		}
	}
	row("ID", p.ID)
	row("Name", p.Name)
	row("Description", p.Description)
	row("Output folder", p.OutputFolder)
	row("Videos", fmt.Sprint(p.VideoCount))
	row("Size", humanSize(p.TotalSizeBytes))
	row("Created", p.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if p.ExpiresAt != nil && !p.ExpiresAt.IsZero() {
		row("Expires", p.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	}
	if p.IsDeleted() {
		row("Deleted", p.DeletedAt.Local().Format("2006-01-02 15:04:05"))
	}
	_ = tw.Flush()
}

func (a *App) projectsURLsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "urls <project-id>",
		Short: "Print freshly signed asset URLs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			urls, err := a.projects.URLs(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printed := false
			for _, u := range []struct{ label, url string }{
				{"preview", urls.PreviewVideoURL},
				{"thumbnail", urls.PreviewThumbnailURL},
				{"zip", urls.ZipURL},
			} {
				if u.url == "" {
					continue
				}
				a.printf("%-9s %s\n", u.label, u.url)
				printed = true
			}
			if !printed {
				return services.ErrNoAssets
			}
			return nil
		},
	}
}

func (a *App) projectsDeleteCommand() *cobra.Command {
	var hard bool
	cmd := &cobra.Command{
		Use:   "delete <project-id>...",
		Short: "Delete projects",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if err := a.projects.Delete(cmd.Context(), args[0], hard); err != nil {
					return err
				}
				a.printf("Deleted project %s\n", args[0])
				return nil
			}
			res, err := a.projects.DeleteMany(cmd.Context(), args, hard)
			if err != nil {
				return err
			}
			return a.reportBulk(res, "Deleted", "project")
		},
	}
	cmd.Flags().BoolVar(&hard, "hard", false, "remove permanently instead of soft-deleting")
	return cmd
}

func (a *App) projectsDownloadCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "download <project-id>",
		Short: "Download the preview, thumbnail and zip of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.projects.Download(cmd.Context(), args[0], dir)
			if err != nil {
				return err
			}
			return a.reportBulk(res, "Downloaded", "file")
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "target directory")
	return cmd
}
