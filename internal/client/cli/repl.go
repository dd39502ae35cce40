package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// shellExec is what the REPL needs from the App. Tests provide a stub.
type shellExec interface {
	Dispatch(ctx context.Context, args []string) error
	Select(paths []string)
	SelectAll()
	Deselect(paths []string)
	SelectionSummary() string
	Login() error
	Report(err error)
}

const shellHelp = `Shell commands:
  select <path>...     add files to the selection
  select all           select every file of the category used next
  deselect [path...]   remove files, or clear the selection
  selection            show the selection
  login                paste a bearer token for this session
  help                 show this help
  exit | quit          leave the shell
Every other line runs as a vidbatch command, e.g. "files list video".
Bulk commands without paths act on the selection and clear it.`

// runREPL reads lines from scanner until EOF or exit. A failing line is
// reported and the loop carries on.
func runREPL(ctx context.Context, a shellExec, prompt func() string, scanner *bufio.Scanner, out io.Writer) {
	for {
		fmt.Fprint(out, prompt())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		if ctx.Err() != nil {
			return
		}

		parts, err := splitLine(scanner.Text())
		if err != nil {
			a.Report(err)
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch cmd, args := parts[0], parts[1:]; cmd {
		case "help", "?":
			fmt.Fprintln(out, shellHelp)
			if len(args) == 0 {
				a.Report(a.Dispatch(ctx, []string{"--help"}))
			} else {
				a.Report(a.Dispatch(ctx, append(args, "--help")))
			}

		case "select":
			switch {
			case len(args) == 1 && args[0] == "all":
				a.SelectAll()
			case len(args) == 0:
				fmt.Fprintln(out, "Usage: select <path>... | select all")
				continue
			default:
				a.Select(args)
			}
			fmt.Fprintln(out, a.SelectionSummary())

		case "deselect":
			a.Deselect(args)
			fmt.Fprintln(out, a.SelectionSummary())

		case "selection":
			fmt.Fprintln(out, a.SelectionSummary())

		case "login":
			a.Report(a.Login())

		case "shell":
			fmt.Fprintln(out, "Already in the shell")

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			a.Report(a.Dispatch(ctx, parts))
		}
	}
}

func (a *App) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell that keeps a file selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.println("vidbatch shell (type 'help' for commands)")
			a.println(describeToken(a.auth.TokenStatus()))
			runREPL(cmd.Context(), a, a.prompt, bufio.NewScanner(lineReader{a.reader}), a.out)
			return nil
		},
	}
}

func (a *App) prompt() string {
	if a.selection.IsEmpty() {
		return "vidbatch> "
	}
	return fmt.Sprintf("vidbatch (%s)> ", a.selectionLabel())
}

// Dispatch runs one shell line through a fresh command tree.
func (a *App) Dispatch(ctx context.Context, args []string) error {
	root := a.rootCommand(true)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *App) Report(err error) { a.report(err) }

func (a *App) Select(paths []string)   { a.selection.Select(paths...) }
func (a *App) SelectAll()              { a.selection.SelectAll() }
func (a *App) Deselect(paths []string) {
	if len(paths) == 0 {
		a.selection.Clear()
		return
	}
	a.selection.Deselect(paths...)
}

func (a *App) selectionLabel() string {
	ids := a.selection.IDs()
	switch {
	case a.selection.IsAll() && len(ids) == 0:
		return "all"
	case a.selection.IsAll():
		return fmt.Sprintf("all but %d", len(ids))
	default:
		return fmt.Sprintf("%d selected", len(ids))
	}
}

func (a *App) SelectionSummary() string {
	ids := a.selection.IDs()
	switch {
	case a.selection.IsEmpty():
		return "Nothing selected"
	case a.selection.IsAll() && len(ids) == 0:
		return "All files selected"
	case a.selection.IsAll():
		return "All files selected except: " + strings.Join(ids, ", ")
	default:
		return fmt.Sprintf("%d %s selected: %s", len(ids), pluralize("file", len(ids)), strings.Join(ids, ", "))
	}
}
