// Package main provides the CLI entrypoint for codebreaker.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/codebreaker/internal/config"
	"github.com/verte-zerg/codebreaker/internal/console"
	"github.com/verte-zerg/codebreaker/internal/game"
	"github.com/verte-zerg/codebreaker/internal/generator"
	"github.com/verte-zerg/codebreaker/internal/history"
	"github.com/verte-zerg/codebreaker/internal/match"
	"github.com/verte-zerg/codebreaker/internal/model"
	"github.com/verte-zerg/codebreaker/internal/stats"
	"github.com/verte-zerg/codebreaker/internal/store"
	"github.com/verte-zerg/codebreaker/internal/tui"
)

const defaultJournalWindow = 5

var (
	playLength  int
	playReveal  bool
	playASCII   bool
	playPlain   bool
	historyFile string
	noJournal   bool

	journalLength int
	journalSince  string
	journalLast   int
	journalWindow int
	journalGame   int64
	journalASCII  bool

	instructionsASCII bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "codebreaker",
		Short:         "Crack the secret numeric code",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().IntVar(&playLength, "length", 0, "code length (prompted when 0)")
	rootCmd.Flags().BoolVar(&playReveal, "reveal", false, "show the secret code (for practice)")
	rootCmd.Flags().BoolVar(&playASCII, "ascii", false, "use ASCII feedback symbols instead of emoji")
	rootCmd.Flags().BoolVar(&playPlain, "plain", false, "use the line-oriented menu instead of the TUI")
	rootCmd.PersistentFlags().StringVar(&historyFile, "history-file", "", "stats file (default: ~/"+config.HistoryFileName+")")
	rootCmd.Flags().BoolVar(&noJournal, "no-journal", false, "do not record games in the journal")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newInstructionsCmd())
	rootCmd.AddCommand(newJournalCmd())
	rootCmd.AddCommand(newScoresCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolvePlayConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	hist, err := loadHistory(cfg.HistoryPath)
	if err != nil {
		return err
	}

	var journal game.Journal
	if cfg.Journal {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			logErrf("failed to open journal, games will not be journaled: %v\n", err)
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logErrf("failed to close journal: %v\n", cerr)
				}
			}()
			journal = st
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	session := game.NewSession(hist, journal, generator.New())

	if cfg.Plain || !stats.IsTerminal(os.Stdin) || !stats.IsTerminal(os.Stdout) {
		glyphs := match.EmojiGlyphs
		if cfg.ASCII {
			glyphs = match.ASCIIGlyphs
		}
		c := console.New(session, cmd.InOrStdin(), cmd.OutOrStdout(), console.Options{
			Length: cfg.Length,
			Reveal: cfg.Reveal,
			Glyphs: glyphs,
		})
		return c.Run(ctx)
	}

	program := tea.NewProgram(tui.NewModel(ctx, session, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func resolvePlayConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "length", &playLength, fileCfg.Play.Length)
	applyBoolConfig(cmd, "reveal", &playReveal, fileCfg.Play.Reveal)
	applyBoolConfig(cmd, "ascii", &playASCII, fileCfg.Play.ASCII)
	applyBoolConfig(cmd, "plain", &playPlain, fileCfg.Play.Plain)
	applyStringConfig(cmd, "history-file", &historyFile, fileCfg.Stats.HistoryFile)

	journalEnabled := true
	if fileCfg.Stats.Journal != nil {
		journalEnabled = *fileCfg.Stats.Journal
	}
	if cmd.Flags().Changed("no-journal") {
		journalEnabled = !noJournal
	}

	return model.Config{
		Length:      playLength,
		Reveal:      playReveal,
		ASCII:       playASCII,
		Plain:       playPlain,
		HistoryPath: resolveHistoryPath(historyFile),
		Journal:     journalEnabled,
	}, nil
}

func resolveHistoryPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return config.DefaultHistoryPath()
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// loadHistory loads the stats file. A corrupt file stops the program so it is
// never overwritten; a file that cannot be created only disables saving.
func loadHistory(path string) (*history.Store, error) {
	hist, err := history.Load(path)
	switch {
	case err == nil:
		return hist, nil
	case errors.Is(err, history.ErrCorruptHistory):
		return nil, fmt.Errorf("%w\nfix or remove %s to continue", err, path)
	case errors.Is(err, history.ErrPersistence) && hist != nil:
		logErrf("Uh oh, I couldn't create a history file for you: %v\n", err)
		return hist, nil
	default:
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
}

func newScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scores",
		Short: "Show best and average scores by code length",
		Args:  cobra.NoArgs,
		RunE:  runScoresCmd,
	}
}

func runScoresCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "history-file", &historyFile, fileCfg.Stats.HistoryFile)
	hist, err := loadHistory(resolveHistoryPath(historyFile))
	if err != nil {
		return err
	}
	return stats.RenderScores(cmd.OutOrStdout(), hist)
}

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show finished games and the guesses trend",
		Args:  cobra.NoArgs,
		RunE:  runJournalCmd,
	}
	cmd.Flags().IntVar(&journalLength, "length", 0, "code length filter")
	cmd.Flags().StringVar(&journalSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&journalLast, "last", 0, "limit to last N games")
	cmd.Flags().IntVar(&journalWindow, "window", defaultJournalWindow, "moving average window")
	cmd.Flags().Int64Var(&journalGame, "game", 0, "show the guesses of one game by its # column")
	cmd.Flags().BoolVar(&journalASCII, "ascii", false, "use plain symbols for guess feedback")
	return cmd
}

func runJournalCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if journalSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", journalSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if journalLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if journalWindow < 0 {
		return fmt.Errorf("--window must be >= 0")
	}
	if cmd.Flags().Changed("game") && journalGame <= 0 {
		return fmt.Errorf("--game must be > 0")
	}

	cfg := model.JournalConfig{
		Length: journalLength,
		Since:  sinceTime,
		Last:   journalLast,
		Window: journalWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close journal: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	if journalGame > 0 {
		glyphs := match.EmojiGlyphs
		if journalASCII {
			glyphs = match.ASCIIGlyphs
		}
		gameReport, err := stats.BuildGameReport(ctx, st, journalGame)
		if err != nil {
			return fmt.Errorf("failed to load game: %w", err)
		}
		return stats.RenderGame(out, gameReport, glyphs)
	}
	report, err := stats.BuildReport(ctx, st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}
	return stats.RenderJournal(out, report, stats.TerminalWidth(out))
}

func newInstructionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instructions",
		Short: "Explain how to play",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			glyphs := match.EmojiGlyphs
			if instructionsASCII {
				glyphs = match.ASCIIGlyphs
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), console.InstructionsText(glyphs))
			return err
		},
	}
	cmd.Flags().BoolVar(&instructionsASCII, "ascii", false, "use ASCII feedback symbols")
	return cmd
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# codebreaker configuration
# Uncomment a value to enable it. CLI flags override config values.

[play]
# length = 4            # Code length; prompted for each game when unset
# reveal = false        # Show the secret code (for practice)
# ascii = false         # Use ASCII feedback symbols instead of emoji
# plain = false         # Use the line-oriented menu instead of the TUI

[stats]
# history-file = %q
# journal = true        # Record every finished game in %s
`,
		config.DefaultHistoryPath(),
		config.DefaultDBPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Length != 0 && (cfg.Length < game.MinCodeLength || cfg.Length > game.MaxCodeLength) {
		return fmt.Errorf("--length must be between %d and %d", game.MinCodeLength, game.MaxCodeLength)
	}
	if cfg.HistoryPath == "" {
		return fmt.Errorf("--history-file must not be empty")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
