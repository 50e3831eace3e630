package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcus/dialog/internal/config"
	"github.com/marcus/dialog/internal/output"
	"github.com/marcus/dialog/internal/store"
	"github.com/marcus/dialog/internal/workdir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	version string
	layout  workdir.Layout
	logFile *os.File
)

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "dlg",
	Short: "Fill in forms in the terminal",
	Long: `dlg - Terminal forms with aligned captions and multi-line entry rows.

Forms are described in YAML or JSON files. Drafts are saved as you type and
kept in a local sqlite database until you submit them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	args := os.Args[1:]
	if isFormFile(firstNonFlagArg(args)) {
		// `dlg form.yaml` is shorthand for `dlg edit form.yaml`.
		rootCmd.SetArgs(append([]string{"edit"}, args...))
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)

	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level")
	rootCmd.PersistentFlags().String("db", "", "Database path (overrides config)")
}

func initBaseDir() {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
	// Worktrees share the main checkout's .dlg via .dlg-root
	layout = workdir.Find(wd)
}

// getBaseDir returns the base directory for the project
func getBaseDir() string {
	return layout.Base
}

// initLogging points the default slog logger at the configured log file.
// The terminal belongs to the UI, so nothing is logged to stderr.
func initLogging(cmd *cobra.Command) error {
	cfg, err := config.Load(getBaseDir())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := parseLevel(cfg.LogLevel)
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = slog.LevelDebug
	}

	f, err := layout.OpenLog(cfg)
	if err != nil {
		return err
	}
	logFile = f

	slog.SetDefault(slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level: level,
	})))
	slog.Debug("command started", "cmd", cmd.Name(), "version", version)
	return nil
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// openStore opens the database named by --db or the config.
func openStore(cmd *cobra.Command) (*store.Store, *config.Config, error) {
	cfg, err := config.Load(getBaseDir())
	if err != nil {
		output.Error("load config: %v", err)
		return nil, nil, err
	}

	flagPath, _ := cmd.Flags().GetString("db")
	st, err := store.Open(layout.DBPath(cfg, flagPath))
	if err != nil {
		output.Error("%v", err)
		return nil, nil, err
	}
	return st, cfg, nil
}

// addJSONFlag adds the shared --json flag.
func addJSONFlag(fs *pflag.FlagSet) {
	fs.Bool("json", false, "Machine-readable JSON")
}

// addFormFlag adds the shared --form filter flag.
func addFormFlag(fs *pflag.FlagSet) {
	fs.StringP("form", "f", "", "Only include submissions of this form")
}

// firstNonFlagArg returns the first argument that is not a flag.
func firstNonFlagArg(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return ""
}

// isFormFile reports whether arg names an existing form definition file.
func isFormFile(arg string) bool {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".yaml", ".yml", ".json":
	default:
		return false
	}
	info, err := os.Stat(arg)
	return err == nil && !info.IsDir()
}
