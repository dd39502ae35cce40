package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
)

func (a *App) jobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Submit and follow processing jobs",
	}
	cmd.AddCommand(
		a.jobsSubmitCommand(),
		a.jobsSingleCommand(),
		a.jobsStatusCommand(),
		a.jobsWatchCommand(),
		a.jobsListCommand(),
		a.jobsForgetCommand(),
		a.jobsConfigCommand(),
		a.jobsDownloadCommand(),
	)
	return cmd
}

// processingFlags override individual fields of the backend's default
// processing configuration.
type processingFlags struct {
	file           string
	position       string
	fitMode        string
	preset         string
	durationPolicy string
	fixedSeconds   float64
	canvas         []int
	mixAudio       bool
}

func (p *processingFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&p.file, "processing", "", "JSON file with a processing config")
	f.StringVar(&p.position, "position", "", "text position: center, top or bottom")
	f.StringVar(&p.fitMode, "fit", "", "fit mode: cover, contain or zoom")
	f.StringVar(&p.preset, "preset", "", "text preset: clean, bold, subtle, yellow or shadow")
	f.StringVar(&p.durationPolicy, "duration-policy", "", "shortest, audio, video or fixed")
	f.Float64Var(&p.fixedSeconds, "fixed-seconds", 0, "output length for the fixed duration policy")
	f.IntSliceVar(&p.canvas, "canvas", nil, "output width,height")
	f.BoolVar(&p.mixAudio, "mix-audio", false, "keep the source audio under the music")
}

// build returns nil when no processing flag was given, which leaves the
// backend defaults in effect.
func (p *processingFlags) build(cmd *cobra.Command, a *App) (*models.ProcessingConfig, error) {
	f := cmd.Flags()
	changed := false
	for _, name := range []string{"processing", "position", "fit", "preset", "duration-policy", "fixed-seconds", "canvas", "mix-audio"} {
		changed = changed || f.Changed(name)
	}
	if !changed {
		return nil, nil
	}

	cfg, err := a.jobs.DefaultConfig(cmd.Context())
	if err != nil {
		return nil, err
	}
	if p.file != "" {
		data, err := os.ReadFile(p.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read processing config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: processing config %s: %v", models.ErrInvalidRequest, p.file, err)
		}
	}
	if f.Changed("position") {
		cfg.Position = p.position
	}
	if f.Changed("fit") {
		cfg.FitMode = p.fitMode
	}
	if f.Changed("preset") {
		cfg.Preset = p.preset
	}
	if f.Changed("duration-policy") {
		cfg.DurationPolicy = p.durationPolicy
	}
	if f.Changed("fixed-seconds") {
		secs := p.fixedSeconds
		cfg.FixedSeconds = &secs
	}
	if f.Changed("canvas") {
		if len(p.canvas) != 2 {
			return nil, fmt.Errorf("%w: canvas wants width,height", models.ErrInvalidRequest)
		}
		cfg.CanvasSize = [2]int{p.canvas[0], p.canvas[1]}
	}
	if f.Changed("mix-audio") {
		cfg.MixAudio = p.mixAudio
	}
	return &cfg, nil
}

// parseCombinations splits each "a|b|c" value into one text combination.
func parseCombinations(values []string) [][]string {
	out := make([][]string, 0, len(values))
	for _, v := range values {
		parts := strings.Split(v, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		out = append(out, parts)
	}
	return out
}

func (a *App) jobsSubmitCommand() *cobra.Command {
	var (
		req    models.BatchRequest
		texts  []string
		unique int
		watch  bool
		proc   processingFlags
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Start a batch job over a video folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.TextCombinations = parseCombinations(texts)
			if cmd.Flags().Changed("unique") {
				req.UniqueMode = true
				req.UniqueAmount = &unique
			}
			cfg, err := proc.build(cmd, a)
			if err != nil {
				return err
			}
			req.Config = cfg

			tracked, err := a.jobs.SubmitBatch(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.printf("Submitted batch job %s (%d %s)\n", tracked.ID, tracked.TotalJobs, pluralize("video", tracked.TotalJobs))
			if !watch {
				return nil
			}
			return a.watch(cmd.Context(), tracked.ID)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.VideoFolder, "videos", "", "video folder to process")
	f.StringVar(&req.AudioFolder, "audio", "", "audio folder to mix in")
	f.StringVar(&req.OutputFolder, "output", "", "output folder")
	f.StringArrayVar(&texts, "text", nil, `text combination, segments separated by "|" (repeatable)`)
	f.IntVar(&unique, "unique", 0, "produce this many unique combinations")
	f.BoolVar(&watch, "watch", false, "follow the job until it finishes")
	proc.register(cmd)
	return cmd
}

func (a *App) jobsSingleCommand() *cobra.Command {
	var (
		req   models.SingleRequest
		watch bool
		proc  processingFlags
	)
	cmd := &cobra.Command{
		Use:   "single",
		Short: "Render one video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := proc.build(cmd, a)
			if err != nil {
				return err
			}
			req.Config = cfg

			tracked, err := a.jobs.SubmitSingle(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.printf("Submitted job %s\n", tracked.ID)
			if !watch {
				return nil
			}
			return a.watch(cmd.Context(), tracked.ID)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.VideoPath, "video", "", "source video path")
	f.StringVar(&req.AudioPath, "audio", "", "audio track path")
	f.StringArrayVar(&req.TextSegments, "text", nil, "text segment (repeatable)")
	f.StringVar(&req.OutputPath, "output", "", "output path")
	f.BoolVar(&watch, "watch", false, "follow the job until it finishes")
	proc.register(cmd)
	return cmd
}

func (a *App) jobsStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show the current status of a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := a.jobs.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printJob(job)
			return nil
		},
	}
}

func (a *App) jobsWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <job-id>",
		Short: "Follow a job until it completes or fails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.watch(cmd.Context(), args[0])
		},
	}
}

func (a *App) watch(ctx context.Context, id string) error {
	progress := newJobProgress(a.out)
	job, err := a.jobs.Watch(ctx, id, progress.update)
	progress.done()
	if err != nil {
		return err
	}
	a.printJob(job)
	if job.Status == models.JobFailed {
		return errReported
	}
	return nil
}

func (a *App) printJob(job models.Job) {
	switch job.Status {
	case models.JobCompleted:
		a.printf("Job %s completed: %d %s\n", job.ID, len(job.OutputFiles), pluralize("output", len(job.OutputFiles)))
		for _, f := range job.OutputFiles {
			a.printf("  %s\n", f)
		}
	case models.JobFailed:
		reason := job.Error
		if reason == "" {
			reason = job.Message
		}
		a.printf("Job %s failed: %s\n", job.ID, reason)
	default:
		a.printf("Job %s %s %d%%", job.ID, job.Status, job.Percent())
		if job.Message != "" {
			a.printf(" %s", job.Message)
		}
		a.println()
	}
}

func (a *App) jobsListCommand() *cobra.Command {
	var active, remote bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs submitted from this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)

			if remote {
				list, err := a.jobs.Remote(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					a.println("No jobs.")
					return nil
				}
				fmt.Fprintln(tw, "ID\tSTATUS\tPROGRESS\tMESSAGE")
				for _, j := range list {
					fmt.Fprintf(tw, "%s\t%s\t%d%%\t%s\n", j.ID, j.Status, j.Percent(), j.Message)
				}
				return tw.Flush()
			}

			list, err := a.jobs.Tracked(cmd.Context(), active)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				a.println("No tracked jobs.")
				return nil
			}
			fmt.Fprintln(tw, "ID\tKIND\tSTATUS\tPROGRESS\tSUBMITTED")
			for _, j := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d%%\t%s\n", j.ID, j.Kind, j.Status, j.Percent(), j.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&active, "active", false, "only jobs that have not finished")
	cmd.Flags().BoolVar(&remote, "remote", false, "list the jobs the backend is tracking")
	return cmd
}

func (a *App) jobsForgetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "forget <job-id>...",
		Short: "Stop tracking jobs locally and on the backend",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := models.BulkResult{Attempted: len(args)}
			for _, id := range args {
				if err := a.jobs.Forget(cmd.Context(), id); err != nil {
					a.log.Warn(cmd.Context(), "forget failed", "job_id", id, "error", err)
					res.Failed++
					res.FailedItems = append(res.FailedItems, id)
					continue
				}
				res.Succeeded++
			}
			return a.reportBulk(res, "Forgot", "job")
		},
	}
}

func (a *App) jobsConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the default processing config as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.jobs.DefaultConfig(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}
}

func (a *App) jobsDownloadCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "download <job-id>",
		Short: "Fetch the output files of a finished job from the output bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.projects.DownloadOutputs(cmd.Context(), args[0], dir)
			if err != nil {
				return err
			}
			return a.reportBulk(res, "Downloaded", "file")
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", "target directory")
	return cmd
}
