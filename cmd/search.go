package cmd

import (
	grovelogging "github.com/grovetools/core/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/dreamsearch/config"
	"github.com/grovetools/dreamsearch/internal/progress"
	"github.com/grovetools/dreamsearch/internal/search"
)

const logComponent = "dreamsearch.cmd"

var ulogSearch = grovelogging.NewUnifiedLogger(logComponent)

type searchFlags struct {
	outDir         string
	progressImages bool
	root           string
	strict         bool
	highlight      bool
}

func runSearch(cmd *cobra.Command, flags *searchFlags, prompt string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")
	configFile, _ := cmd.Flags().GetString("config")

	// Flag conflicts and the pattern are checked before any file is read.
	if flags.progressImages && !jsonOutput {
		return &search.UsageError{Err: search.ErrProgressRequiresJSON}
	}
	pattern, err := search.CompilePattern(prompt)
	if err != nil {
		return err
	}

	cfg, cfgPath, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	// Results own stdout; every log line goes to stderr.
	grovelogging.SetGlobalOutput(cmd.ErrOrStderr())
	if err := configureLogging(cfg.Logging.Level, verbose); err != nil {
		return err
	}
	if cfgPath != "" {
		ulogSearch.Debug("Loaded config").
			Field("path", cfgPath).
			StructuredOnly().
			Emit()
	}

	opts := search.Options{
		Pattern:        pattern,
		OutDir:         cfg.Search.OutDir,
		Root:           cfg.Search.Root,
		JSON:           jsonOutput,
		ProgressImages: flags.progressImages,
		Strict:         cfg.Strict(),
		Highlight:      cfg.Search.Highlight,
	}
	changed := cmd.Flags().Changed
	if changed("outdir") {
		opts.OutDir = flags.outDir
	}
	if changed("root") {
		opts.Root = flags.root
	}
	if changed("strict") {
		opts.Strict = flags.strict
	}
	if changed("highlight") {
		opts.Highlight = flags.highlight
	}

	searcher, err := search.New(opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	_, err = searcher.Run()
	return err
}

func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		return config.LoadDefault()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// configureLogging applies the configured level to each component logger.
// With --verbose, structured debug output is also sent to stderr.
func configureLogging(level string, verbose bool) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return search.Usagef("invalid log level %q", level)
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	for _, component := range []string{logComponent, search.LogComponent, progress.LogComponent} {
		logger := grovelogging.NewLogger(component).Logger
		logger.SetLevel(lvl)
		if verbose {
			logger.SetOutput(grovelogging.GetGlobalOutput())
		}
	}
	return nil
}
