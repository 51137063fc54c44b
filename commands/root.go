package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sam-masaki/layout-speed/internal/core/layout"
	"github.com/sam-masaki/layout-speed/internal/core/timeline"
	"github.com/sam-masaki/layout-speed/internal/data/chunker"
	"github.com/sam-masaki/layout-speed/internal/data/watcher"
	"github.com/sam-masaki/layout-speed/internal/presentation/formatter"
	"github.com/sam-masaki/layout-speed/internal/util"
)

var (
	// Logging related
	debug     bool
	logFormat string

	// Layout and tuning
	layoutPath   string
	tunablesPath string

	// Input
	inputFile string

	// Analysis
	parallel  bool
	watchMode bool

	// Output related
	outputFormat string

	rootCmd = &cobra.Command{
		Use:   "layout-speed [flags] [text]",
		Short: "Keyboard layout typing simulator",
		Long: `layout-speed simulates typing text on a keyboard layout and reports
finger travel distance, typing time, hand alternation, and per-finger load.

Text is given as an argument or read from a file with --file.

Examples:
  layout-speed "the quick brown fox"                  # Analyze a string on QWERTY
  layout-speed --layout dvorak.layout --file book.txt  # Analyze a file on a custom layout
  layout-speed --file book.txt --parallel              # Chunked parallel analysis
  layout-speed --file draft.txt --watch                # Re-analyze on every save
  layout-speed --file book.txt --output json           # Machine-readable report`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}
)

const defaultLogFile = "~/.layout-speed/logs/app.log"

func init() {
	// Layout configuration
	rootCmd.PersistentFlags().StringVarP(&layoutPath, "layout", "l", "",
		"Layout file path (default: builtin QWERTY)")
	rootCmd.PersistentFlags().StringVar(&tunablesPath, "tunables", "",
		"Timing tunables YAML file path")

	// Input configuration
	rootCmd.Flags().StringVarP(&inputFile, "file", "f", "",
		"Read text to analyze from a file")

	// Analysis configuration
	rootCmd.Flags().BoolVarP(&parallel, "parallel", "p", false,
		"Split the input into chunks and analyze them concurrently")
	rootCmd.Flags().BoolVarP(&watchMode, "watch", "w", false,
		"Watch the input file and re-analyze on change (requires --file)")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "summary",
		"Output format (summary, table, json, csv)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"Log entry format (text, json)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	initLogging()

	if inputFile == "" && len(args) == 0 {
		return fmt.Errorf("no input: pass text as an argument or use --file")
	}
	if inputFile != "" && len(args) > 0 {
		return fmt.Errorf("pass either text or --file, not both")
	}
	if watchMode && inputFile == "" {
		return fmt.Errorf("--watch requires --file")
	}
	if inputFile != "" {
		inputFile = expandPath(inputFile)
	}

	builder, err := newBuilder()
	if err != nil {
		return err
	}
	ch := chunker.New(builder)

	analyze := func() error {
		var tl *timeline.Timeline
		var source string
		if inputFile != "" {
			source = filepath.Base(inputFile)
			var err error
			tl, err = ch.BuildFile(inputFile, parallel)
			if err != nil {
				return err
			}
		} else {
			source = "argument"
			if parallel {
				tl = ch.BuildParallel(args[0])
			} else {
				tl = builder.Build(args[0], false)
			}
		}
		return formatReport(tl, source)
	}

	if err := analyze(); err != nil {
		return err
	}
	if !watchMode {
		return nil
	}
	return watchAndRerun(inputFile, analyze)
}

func watchAndRerun(path string, analyze func() error) error {
	fw, err := watcher.New(path)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	defer fw.Close()

	util.LogInfof("Watching %s for changes", path)
	for range fw.Events() {
		util.LogDebugf("Change detected in %s", path)
		if err := analyze(); err != nil {
			// Transient errors are expected while an editor rewrites the
			// file, keep watching.
			util.LogWarnf("Analysis failed: %v", err)
		}
	}
	return nil
}

func formatReport(tl *timeline.Timeline, source string) error {
	report := formatter.BuildReport(tl, source)
	switch outputFormat {
	case "summary":
		return formatter.NewSummaryFormatter().Format(report)
	case "table":
		return formatter.NewTableFormatter().Format(report)
	case "json":
		return formatter.NewJSONFormatter().Format(report)
	case "csv":
		return formatter.NewCSVFormatter().Format(report)
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
}

// newBuilder loads the layout and tunables shared by all commands.
func newBuilder() (*timeline.Builder, error) {
	var lay *layout.Layout
	var err error
	if layoutPath != "" {
		lay, err = layout.Load(expandPath(layoutPath))
	} else {
		lay, err = layout.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}

	tun := timeline.DefaultTunables()
	if tunablesPath != "" {
		tun, err = timeline.LoadTunables(expandPath(tunablesPath))
		if err != nil {
			return nil, fmt.Errorf("failed to load tunables: %w", err)
		}
	}
	return timeline.NewBuilder(lay, tun), nil
}

func initLogging() {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, util.ParseLogFormat(logFormat), debug)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
