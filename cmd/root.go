package cmd

import (
	"runtime"

	"github.com/grovetools/core/cli"
	"github.com/spf13/cobra"

	"github.com/grovetools/dreamsearch/config"
	"github.com/grovetools/dreamsearch/internal/search"
)

// Build information, set with -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCmd creates the root command for dreamsearch.
func NewRootCmd() *cobra.Command {
	opts := &searchFlags{}

	cmd := cli.NewStandardCommand(
		"dreamsearch <prompt>",
		"Search a stable diffusion dream log file for an image",
	)
	cmd.Long = `Search the dream log for prompts matching a regular expression.

Matching log lines are printed as-is, or with --json as an array of records
holding the image path, the prompt and the generation parameters. JSON output
is ASCII-only: other characters are written as \uXXXX escapes.

Examples:
  dreamsearch 'cat'
  dreamsearch --json -o outputs/img-samples 'oil paint(ing)?'
  dreamsearch --json --progress-images '^portrait'`
	cmd.Version = Version
	cmd.Args = exactArgs(1)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd, opts, args[0])
	}
	cli.SetVersionTemplate(cmd, cli.VersionInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: Date,
		BuildArch: runtime.GOOS + "/" + runtime.GOARCH,
	})

	// --json, --config and --verbose come from the standard command.
	if f := cmd.PersistentFlags().Lookup("config"); f != nil {
		f.Usage = "Config file (default: ./" + config.FileName + " or ~/.config/dreamsearch/config.yml)"
	}

	f := cmd.Flags()
	f.StringVarP(&opts.outDir, "outdir", "o", search.DefaultOutDir, "Directory used to save generated images and a log of prompts and seeds")
	f.BoolVar(&opts.progressImages, "progress-images", false, "Include progress images. Requires --json too.")
	f.StringVar(&opts.root, "root", "", "Project root a relative --outdir is resolved against (default: working directory)")
	f.BoolVar(&opts.strict, "strict", false, "Fail on malformed log lines instead of skipping them")
	f.BoolVar(&opts.highlight, "highlight", false, "Highlight the matched prompt text on colour terminals")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &search.UsageError{Err: err}
	})

	return cmd
}

// exactArgs reports arity problems as usage errors.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &search.UsageError{Err: err}
		}
		return nil
	}
}
