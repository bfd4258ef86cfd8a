// Package main provides the CLI entrypoint for labpick.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/labpick/internal/config"
	"github.com/verte-zerg/labpick/internal/generator"
	"github.com/verte-zerg/labpick/internal/labs"
	"github.com/verte-zerg/labpick/internal/logging"
	"github.com/verte-zerg/labpick/internal/model"
	"github.com/verte-zerg/labpick/internal/picker"
	"github.com/verte-zerg/labpick/internal/render"
	"github.com/verte-zerg/labpick/internal/report"
	"github.com/verte-zerg/labpick/internal/store"
	"github.com/verte-zerg/labpick/internal/tui"
)

const (
	defaultLab      = 1
	defaultLogLevel = "warn"
	defaultCount    = 1
)

var (
	rootSeed     int64
	rootLab      int
	rootLogLevel string
	rootLogFile  string

	pickLab     int
	pickCount   int
	pickJournal bool
	pickPlain   bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "labpick",
		Short:         "Lab variant picker",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPickerCmd,
	}

	rootCmd.PersistentFlags().Int64Var(&rootSeed, "seed", 0, "random seed (0 seeds from the clock)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootLogFile, "log-file", "", "append logs to this file")
	rootCmd.Flags().IntVar(&rootLab, "lab", defaultLab, "initially selected lab")

	rootCmd.AddCommand(newPickCmd())
	rootCmd.AddCommand(newLabsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// loadConfig merges config file, environment and flags into a model.Config.
func loadConfig(cmd *cobra.Command, lab *int) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	env, err := config.LoadEnv(config.DefaultEnvPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load env: %w", err)
	}
	if err := config.ApplyEnv(&fileCfg, env); err != nil {
		return model.Config{}, err
	}
	applyInt64Config(cmd, "seed", &rootSeed, fileCfg.Picker.Seed)
	applyIntConfig(cmd, "lab", lab, fileCfg.Picker.Lab)
	applyStringConfig(cmd, "log-level", &rootLogLevel, fileCfg.Picker.LogLevel)
	applyStringConfig(cmd, "log-file", &rootLogFile, fileCfg.Picker.LogFile)

	return model.Config{
		Seed:     rootSeed,
		Lab:      *lab,
		LogLevel: rootLogLevel,
		LogFile:  rootLogFile,
	}, nil
}

func runPickerCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, &rootLab)
	if err != nil {
		return err
	}
	table, err := labs.Default()
	if err != nil {
		return fmt.Errorf("failed to load lab table: %w", err)
	}
	if err := validateConfig(cfg, table); err != nil {
		return err
	}

	logOut := io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() {
			// Best-effort log file close.
			_ = f.Close()
		}()
		logOut = f
	}
	logger := logging.New(cfg.LogLevel, logOut)

	st, err := store.OpenMemory()
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.WithError(cerr).Error("failed to close journal")
		}
	}()

	p := picker.New(table, table.NewHistory(), newGenerator(cfg.Seed), st, logger)
	logger.WithFields(logrus.Fields{
		"session": p.SessionID(),
		"lab":     cfg.Lab,
	}).Info("starting picker")

	program := tea.NewProgram(tui.NewModel(p, st, cfg.Lab), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newPickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Print variants for a lab",
		Args:  cobra.NoArgs,
		RunE:  runPickCmd,
	}
	cmd.Flags().IntVar(&pickLab, "lab", 0, "lab number")
	cmd.Flags().IntVar(&pickCount, "count", defaultCount, "number of consecutive picks")
	cmd.Flags().BoolVar(&pickJournal, "journal", false, "print the session journal after picking")
	cmd.Flags().BoolVar(&pickPlain, "plain", false, "print plain text even on a terminal")
	return cmd
}

func runPickCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, &pickLab)
	if err != nil {
		return err
	}
	if cfg.Lab <= 0 {
		return fmt.Errorf("--lab is required and must be > 0")
	}
	if pickCount <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	if !logging.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("--log-level must be one of panic, fatal, error, warn, info, debug, trace")
	}
	table, err := labs.Default()
	if err != nil {
		return fmt.Errorf("failed to load lab table: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	var journal picker.Journal
	var st *store.Store
	if pickJournal {
		st, err = store.OpenMemory()
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logger.WithError(cerr).Error("failed to close journal")
			}
		}()
		journal = st
	}

	ctx := context.Background()
	p := picker.New(table, table.NewHistory(), newGenerator(cfg.Seed), journal, logger)
	out := cmd.OutOrStdout()
	styled := !pickPlain && isTerminal(out)
	for i := 0; i < pickCount; i++ {
		res, err := p.Pick(ctx, cfg.Lab)
		if err != nil {
			return fmt.Errorf("failed to pick variants: %w", err)
		}
		text := render.Text(res)
		if styled {
			text = tui.RenderResult(res)
		}
		if i > 0 {
			text = "\n" + text
		}
		if _, err := fmt.Fprintln(out, text); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if st == nil {
		return nil
	}
	rep, err := report.BuildReport(ctx, st, model.JournalFilter{})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, ""); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := report.RenderJournal(out, rep.Picks); err != nil {
		return fmt.Errorf("failed to write journal: %w", err)
	}
	if len(rep.Picks) == 0 {
		return nil
	}
	if err := report.RenderSummary(out, rep.Summaries); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func newLabsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "labs",
		Short: "List labs and their variant ranges",
		Args:  cobra.NoArgs,
		RunE:  runLabsCmd,
	}
}

func runLabsCmd(cmd *cobra.Command, _ []string) error {
	table, err := labs.Default()
	if err != nil {
		return fmt.Errorf("failed to load lab table: %w", err)
	}
	if err := report.RenderLabs(cmd.OutOrStdout(), table); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newGenerator(seed int64) *generator.Generator {
	if seed == 0 {
		return generator.New()
	}
	return generator.NewWithSeed(seed)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# labpick configuration
# Uncomment a value to enable it. Environment variables override config
# values and CLI flags override both.

[picker]
# seed = 0                # Random seed, 0 seeds from the clock (%s)
# lab = %d                # Initially selected lab (%s)
# log-level = %q       # Log level (%s)
# log-file = ""           # Append logs to this file (%s)
`,
		config.EnvSeed,
		defaultLab,
		config.EnvLab,
		defaultLogLevel,
		config.EnvLogLevel,
		config.EnvLogFile,
	)
}

func validateConfig(cfg model.Config, table *labs.Table) error {
	if cfg.Lab < 1 || cfg.Lab > table.Count() {
		return fmt.Errorf("--lab must be between 1 and %d", table.Count())
	}
	if !logging.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("--log-level must be one of panic, fatal, error, warn, info, debug, trace")
	}
	return nil
}
