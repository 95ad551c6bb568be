package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/electronjoe/photomap/internal/config"
	"github.com/electronjoe/photomap/internal/exiftool"
	"github.com/electronjoe/photomap/internal/locate"
	"github.com/electronjoe/photomap/internal/maps"
)

const (
	exitOK      = 0
	exitFatal   = 1
	exitMissing = 2
)

var errMissing = errors.New("no GPS data found")

type options struct {
	cfgPath     string
	noOpen      bool
	failMissing bool
}

// pipelineFactory builds the locate.Service for a loaded config. Tests
// replace it to avoid spawning real processes.
var pipelineFactory = newService

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "photomap <image_path>",
		Short: "Show where a photo was taken on a map",
		Long: `photomap reads the GPS position recorded in an image with exiftool,
converts it to decimal degrees and opens the location in the default
web browser. The map URL is always printed, so it can be copied when
no browser is available.

Put -- before an image path that starts with a dash:

	photomap -- -vacation.jpg`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				fmt.Fprintf(stderr, "Usage: %s <image_path>\n", cmd.Name())
				return nil
			}
			return run(cmd, opts, args[0], stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.cfgPath, "config", "c", "", "config file path")
	flags.BoolVar(&opts.noOpen, "no-open", false, "print the map URL without opening a browser")
	flags.BoolVar(&opts.failMissing, "fail-missing", false, "exit with status 2 when the image has no GPS data")
	return cmd
}

func run(cmd *cobra.Command, opts options, imagePath string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(opts.cfgPath)
	if err != nil {
		return err
	}
	if opts.noOpen {
		cfg.Browser.Open = false
	}

	svc := pipelineFactory(cfg, stdout, stderr)
	res, err := svc.Run(cmd.Context(), imagePath)
	if err != nil {
		return err
	}
	if res.Outcome == locate.NotFound && opts.failMissing {
		return errMissing
	}
	return nil
}

func newService(cfg *config.Config, stdout, stderr io.Writer) *locate.Service {
	return &locate.Service{
		Reader:       exiftool.NewReader(cfg.Exiftool),
		Launcher:     maps.NewLauncher(cfg.Maps, cfg.Browser, stdout),
		Out:          stdout,
		Err:          stderr,
		Logger:       cfg.NewLogger(stderr),
		CorruptFatal: cfg.Metadata.CorruptFatal,
	}
}

// execute runs the root command with args and maps its error to an exit
// status.
func execute(args []string) int {
	return executeWith(args, os.Stdout, os.Stderr)
}

func executeWith(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	// cobra reads os.Args when given nil
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errMissing):
		return exitMissing
	default:
		fmt.Fprintln(stderr, err)
		return exitFatal
	}
}
