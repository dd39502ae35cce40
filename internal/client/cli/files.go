package cli

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	"github.com/dmitrijs2005/vidbatch/internal/client/upload"
)

func (a *App) filesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "List, upload and manage stored files",
	}
	cmd.AddCommand(
		a.filesListCommand(),
		a.filesUploadCommand(),
		a.filesDeleteCommand(),
		a.filesRenameCommand(),
		a.filesMoveCommand(),
		a.filesBulkDeleteCommand(),
	)
	return cmd
}

func (a *App) filesListCommand() *cobra.Command {
	var (
		subfolder string
		refresh   bool
	)
	cmd := &cobra.Command{
		Use:   "list <category>",
		Short: "List files in a category (video, audio, csv, output)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := models.ParseCategory(args[0])
			if err != nil {
				return err
			}
			listing, err := a.files.List(cmd.Context(), category, subfolder, refresh)
			if err != nil {
				return err
			}

			if listing.Stale {
				a.printf("Server unreachable; showing cached listing from %s\n", listing.SyncedAt.Local().Format("2006-01-02 15:04:05"))
			}
			if len(listing.Items) == 0 {
				a.println("No files.")
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPATH\tSIZE\tMODIFIED")
			for _, f := range listing.Items {
				modified := ""
				if !f.Modified.IsZero() {
					modified = f.Modified.Local().Format("2006-01-02 15:04")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.DisplayName(), f.Filepath, humanSize(f.Size), modified)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&subfolder, "subfolder", "", "folder inside the category")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the local cache")
	return cmd
}

func (a *App) filesUploadCommand() *cobra.Command {
	var subfolder string
	cmd := &cobra.Command{
		Use:   "upload <category> <path>...",
		Short: "Upload local files; stops at the first failure",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := models.ParseCategory(args[0])
			if err != nil {
				return err
			}
			if _, err := category.UploadSegment(); err != nil {
				return err
			}

			paths := args[1:]
			progress := newUploadProgress(a.out, len(paths))
			results, err := a.files.Upload(cmd.Context(), paths, upload.Destination{Category: category, Subfolder: subfolder},
				func(i int, f upload.File, percent int) {
					progress.update(i, f.Name(), percent)
				})
			progress.done()
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Success {
					a.printf("Uploaded %s -> %s\n", filepath.Base(r.Source), r.Filepath)
					if r.Combinations != nil {
						a.printf("  %d text combinations parsed\n", len(r.Combinations))
					}
					continue
				}
				failed++
				a.printf("Upload of %s failed: %s\n", filepath.Base(r.Source), r.Error)
			}
			if skipped := len(paths) - len(results); skipped > 0 {
				a.printf("Skipped %d remaining %s\n", skipped, pluralize("file", skipped))
			}
			if failed > 0 {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&subfolder, "subfolder", "", "destination folder inside the category")
	return cmd
}

func (a *App) filesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <filepath>",
		Short: "Delete one stored file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.files.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func (a *App) filesRenameCommand() *cobra.Command {
	var subfolder string
	cmd := &cobra.Command{
		Use:   "rename <category> <filepath> <new-name>",
		Short: "Change the display name of a file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := models.ParseCategory(args[0])
			if err != nil {
				return err
			}
			if err := a.files.Rename(cmd.Context(), category, subfolder, args[1], args[2]); err != nil {
				return err
			}
			a.printf("Renamed %s to %q\n", args[1], args[2])
			return nil
		},
	}
	cmd.Flags().StringVar(&subfolder, "subfolder", "", "folder the file is listed under")
	return cmd
}

// selectionFlags picks the items a bulk command works on: explicit paths,
// --all with optional exclusions, or the shell's selection.
type selectionFlags struct {
	all     bool
	exclude []string
}

func (s *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&s.all, "all", false, "every file currently listed")
	cmd.Flags().StringSliceVar(&s.exclude, "exclude", nil, "paths to leave out of --all")
}

// resolveSelection returns the selection to operate on. When neither paths nor
// --all are given the shell selection is used, and it is the one cleared
// afterwards.
func (a *App) resolveSelection(s selectionFlags, paths []string) *models.Selection {
	switch {
	case s.all:
		sel := models.AllSelection()
		sel.Deselect(s.exclude...)
		return &sel
	case len(paths) > 0:
		sel := models.ExplicitSelection(paths...)
		return &sel
	default:
		return &a.selection
	}
}

func (a *App) filesMoveCommand() *cobra.Command {
	var (
		subfolder string
		sel       selectionFlags
	)
	cmd := &cobra.Command{
		Use:   "move <category> <destination-folder> [filepath...]",
		Short: "Move files into another folder",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := models.ParseCategory(args[0])
			if err != nil {
				return err
			}
			dest, paths := args[1], args[2:]

			if len(paths) == 1 && !sel.all {
				newPath, err := a.files.Move(cmd.Context(), category, subfolder, paths[0], dest)
				if err != nil {
					return err
				}
				a.printf("Moved %s -> %s\n", paths[0], newPath)
				return nil
			}

			res, err := a.files.MoveSelection(cmd.Context(), a.resolveSelection(sel, paths), category, subfolder, dest)
			if err != nil {
				return err
			}
			return a.reportBulk(res, "Moved", "file")
		},
	}
	cmd.Flags().StringVar(&subfolder, "subfolder", "", "folder the files are listed under")
	sel.register(cmd)
	return cmd
}

func (a *App) filesBulkDeleteCommand() *cobra.Command {
	var (
		subfolder string
		sel       selectionFlags
	)
	cmd := &cobra.Command{
		Use:   "bulk-delete <category> [filepath...]",
		Short: "Delete several files at once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := models.ParseCategory(args[0])
			if err != nil {
				return err
			}
			res, err := a.files.DeleteSelection(cmd.Context(), a.resolveSelection(sel, args[1:]), category, subfolder)
			if err != nil {
				return err
			}
			return a.reportBulk(res, "Deleted", "file")
		},
	}
	cmd.Flags().StringVar(&subfolder, "subfolder", "", "folder the files are listed under")
	sel.register(cmd)
	return cmd
}

func humanSize(n int64) string {
	return humanize.IBytes(uint64(max(n, 0)))
}

func pluralize(noun string, n int) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
