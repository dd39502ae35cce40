package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/vidbatch/internal/buildinfo"
)

// rootCommand builds a fresh command tree. The shell calls it for every line
// so flag values never leak from one command into the next.
func (a *App) rootCommand(inShell bool) *cobra.Command {
	root := &cobra.Command{
		Use:           "vidbatch",
		Short:         "Client for the video batch-processing backend",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		a.filesCommand(),
		a.foldersCommand(),
		a.jobsCommand(),
		a.projectsCommand(),
		a.whoamiCommand(),
		a.pingCommand(),
		a.tokenCommand(),
		a.versionCommand(),
	)
	if !inShell {
		root.AddCommand(a.shellCommand())
	}
	return root
}

func (a *App) execute(ctx context.Context, args []string) error {
	root := a.rootCommand(false)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}
