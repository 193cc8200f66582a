package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tsawler/quill"
	"github.com/tsawler/quill/config"
	"github.com/tsawler/quill/logging"
	"github.com/tsawler/quill/model"
	"github.com/tsawler/quill/report"
)

// rebuildDelay coalesces the burst of events an editor produces on save.
const rebuildDelay = 100 * time.Millisecond

var errNothingToWatch = errors.New("nothing to watch: pass --content or use a config file")

type buildOptions struct {
	output       string
	content      string
	watch        bool
	printContent bool
}

func newBuildCmd(global *globalOptions) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the report document",
		Long: `Write the report to the configured output path. The format follows the
file extension: .docx (the default), .html or .md.

--print-content writes the built-in report text as YAML. Edit a copy and pass
it back with --content to change the wording.

With --watch the report is rebuilt whenever the content file or the config
file changes, until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.printContent {
				_, err := cmd.OutOrStdout().Write(report.DefaultYAML())
				return err
			}
			job := newBuildJob(cmd, global, opts)
			if !opts.watch {
				return job.run()
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return job.watch(ctx)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default "+report.OutputFile+")")
	cmd.Flags().StringVar(&opts.content, "content", "", "YAML file replacing the built-in report content")
	cmd.Flags().BoolVar(&opts.printContent, "print-content", false, "print the built-in content as YAML, a starting point for --content, and exit")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "rebuild when the content or config file changes")
	return cmd
}

// buildJob is one resolved invocation of the build command.
type buildJob struct {
	configFile string
	opts       buildOptions
	out        io.Writer
	logger     zerolog.Logger
}

func newBuildJob(cmd *cobra.Command, global *globalOptions, opts *buildOptions) *buildJob {
	return &buildJob{
		configFile: global.configFile,
		opts:       *opts,
		out:        cmd.OutOrStdout(),
		logger:     logging.GetLogger("build"),
	}
}

// settings loads the configuration and applies flag overrides. It runs on
// every rebuild so config edits take effect in watch mode.
func (j *buildJob) settings() (cfg *config.Config, output, content string, err error) {
	cfg, err = config.Load(j.configFile)
	if err != nil {
		return nil, "", "", err
	}
	output, content = cfg.Output, cfg.Content
	if j.opts.output != "" {
		output = j.opts.output
	}
	if j.opts.content != "" {
		content = j.opts.content
	}
	return cfg, output, content, nil
}

func (j *buildJob) run() error {
	done := logging.LogOperationStart(j.logger, "build")
	defer done()

	cfg, output, contentPath, err := j.settings()
	if err != nil {
		return err
	}

	content, err := loadContent(contentPath)
	if err != nil {
		return err
	}

	b, err := report.Generate(content, output,
		quill.WithStyle(cfg.StyleConfig()),
		quill.WithMetadata(model.Metadata{Creator: "quill " + version}),
		quill.WithLogger(logging.GetLogger("builder")),
	)
	if err != nil {
		return err
	}

	fmt.Fprintf(j.out, "Wrote %s (%d blocks)\n", output, b.Document().Len())
	return nil
}

func loadContent(path string) (*report.Content, error) {
	if path == "" {
		return report.Default()
	}
	return report.Load(path)
}

// watch builds once, then rebuilds after each change to a watched file until
// ctx is done. Build failures are logged and do not stop the loop.
func (j *buildJob) watch(ctx context.Context) error {
	cfg, _, contentPath, err := j.settings()
	if err != nil {
		return err
	}

	targets := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range []string{contentPath, cfg.File} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	if len(targets) == 0 {
		return errNothingToWatch
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Directories rather than files, since editors often save by rename.
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	j.rebuild()
	j.logger.Info().Int("files", len(targets)).Msg("Watching for changes")

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !targets[abs] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			j.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("Change detected")
			pending = time.After(rebuildDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			j.logger.Warn().Err(err).Msg("Watcher error")

		case <-pending:
			pending = nil
			j.rebuild()
		}
	}
}

func (j *buildJob) rebuild() {
	if err := j.run(); err != nil {
		j.logger.Error().Err(err).Msg("Build failed")
	}
}
