package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
)

func (a *App) foldersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Manage folders inside a category",
	}
	cmd.AddCommand(a.foldersListCommand(), a.foldersCreateCommand(), a.foldersDeleteCommand())
	return cmd
}

func (a *App) foldersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <category>",
		Short: "List folders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := models.ParseCategory(args[0])
			if err != nil {
				return err
			}
			folders, err := a.folders.List(cmd.Context(), category)
			if err != nil {
				return err
			}
			if len(folders) == 0 {
				a.println("No folders.")
				return nil
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tFILES\tSIZE")
			for _, f := range folders {
				fmt.Fprintf(tw, "%s\t%d\t%s\n", f.Name, f.FileCount, humanSize(f.TotalSize))
			}
			return tw.Flush()
		},
	}
}

func (a *App) foldersCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <category> <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := models.ParseCategory(args[0])
			if err != nil {
				return err
			}
			path, err := a.folders.Create(cmd.Context(), category, args[1])
			if err != nil {
				return err
			}
			a.printf("Created folder %s\n", path)
			return nil
		},
	}
}

func (a *App) foldersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category> <name>...",
		Short: "Delete folders and the files inside them",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := models.ParseCategory(args[0])
			if err != nil {
				return err
			}
			names := args[1:]

			if len(names) == 1 {
				removed, err := a.folders.Delete(cmd.Context(), category, names[0])
				if err != nil {
					return err
				}
				a.printf("Deleted folder %s (%d %s)\n", names[0], removed, pluralize("file", removed))
				return nil
			}

			res, err := a.folders.DeleteMany(cmd.Context(), category, names)
			if err != nil {
				return err
			}
			return a.reportBulk(res, "Deleted", "folder")
		},
	}
}
