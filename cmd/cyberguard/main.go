// Package main provides the CLI entrypoint for cyberguard.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/cyberguard/internal/audio"
	"github.com/verte-zerg/cyberguard/internal/bank"
	"github.com/verte-zerg/cyberguard/internal/certificate"
	"github.com/verte-zerg/cyberguard/internal/config"
	"github.com/verte-zerg/cyberguard/internal/deck"
	"github.com/verte-zerg/cyberguard/internal/model"
	"github.com/verte-zerg/cyberguard/internal/stats"
	"github.com/verte-zerg/cyberguard/internal/statsui"
	"github.com/verte-zerg/cyberguard/internal/store"
	"github.com/verte-zerg/cyberguard/internal/tui"
)

var (
	playQuestions      string
	playShuffle        bool
	playSound          bool
	playSkipIntro      bool
	playCertificateDir string
	playPlayer         string

	historyDifficulty string
	historyPlayer     string
	historySince      string
	historyLast       int
	historyPlain      bool

	questionsPath string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cyberguard",
		Short:         "Cyber security awareness quiz",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playQuestions, "questions", "", "question bank TOML file (default: built-in bank)")
	rootCmd.Flags().BoolVar(&playShuffle, "shuffle", false, "shuffle questions and answer options")
	rootCmd.Flags().BoolVar(&playSound, "sound", true, "ring the terminal bell on answers")
	rootCmd.Flags().BoolVar(&playSkipIntro, "skip-intro", false, "skip the boot sequence")
	rootCmd.Flags().StringVar(&playCertificateDir, "certificate-dir", "", "directory for exported certificates")
	rootCmd.Flags().StringVar(&playPlayer, "player", "", "prefill the player name")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newQuestionsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "questions", &playQuestions, fileCfg.Game.Questions)
	applyBoolConfig(cmd, "shuffle", &playShuffle, fileCfg.Game.Shuffle)
	applyBoolConfig(cmd, "sound", &playSound, fileCfg.Game.Sound)
	applyBoolConfig(cmd, "skip-intro", &playSkipIntro, fileCfg.Game.SkipIntro)
	applyStringConfig(cmd, "certificate-dir", &playCertificateDir, fileCfg.Game.CertificateDir)
	applyStringConfig(cmd, "player", &playPlayer, fileCfg.Game.Player)

	cfg := model.Config{
		QuestionsPath:  playQuestions,
		Shuffle:        playShuffle,
		Sound:          playSound,
		SkipIntro:      playSkipIntro,
		CertificateDir: playCertificateDir,
		Player:         strings.TrimSpace(playPlayer),
	}
	if cfg.CertificateDir == "" {
		cfg.CertificateDir = config.DefaultCertificateDir()
	}

	questions, err := bank.Load(cfg.QuestionsPath)
	if err != nil {
		return fmt.Errorf("failed to load questions: %w", err)
	}

	storePath := config.DefaultDBPath()
	st, err := store.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	notifier := audio.ForTerminal(cfg.Sound, func(err error) {
		logErrf("sound failed: %v\n", err)
	})
	ui := tui.NewModel(tui.Options{
		Bank:      questions,
		Order:     deck.New(cfg.Shuffle),
		Notifier:  notifier,
		Exporter:  certificate.NewFileExporter(cfg.CertificateDir),
		Recorder:  st,
		SkipIntro: cfg.SkipIntro,
		Player:    cfg.Player,
	})
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
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

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past quiz results",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyDifficulty, "difficulty", "", "difficulty filter")
	cmd.Flags().StringVar(&historyPlayer, "player", "", "player filter (case-insensitive)")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N results")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print a plain report instead of the interactive view")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := historyConfig(historyDifficulty, historyPlayer, historySince, historyLast)
	if err != nil {
		return err
	}

	storePath := config.DefaultDBPath()
	st, err := store.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if historyPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if err := report.Render(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	ui := statsui.NewModel(st, cfg)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func historyConfig(difficulty, player, since string, last int) (model.HistoryConfig, error) {
	if last < 0 {
		return model.HistoryConfig{}, fmt.Errorf("--last must be >= 0")
	}
	cfg := model.HistoryConfig{
		Difficulty: strings.ToLower(strings.TrimSpace(difficulty)),
		Player:     strings.TrimSpace(player),
		Last:       last,
	}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.HistoryConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}

func newQuestionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Validate a question bank and print a summary",
		Args:  cobra.NoArgs,
		RunE:  runQuestionsCmd,
	}
	cmd.Flags().StringVar(&questionsPath, "questions", "", "question bank TOML file (default: built-in bank)")
	return cmd
}

func runQuestionsCmd(cmd *cobra.Command, _ []string) error {
	path := questionsPath
	if path == "" {
		fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if fileCfg.Game.Questions != nil {
			path = *fileCfg.Game.Questions
		}
	}
	b, err := bank.Load(path)
	if err != nil {
		return fmt.Errorf("invalid question bank: %w", err)
	}
	return writeBankSummary(cmd.OutOrStdout(), path, b)
}

func writeBankSummary(w io.Writer, path string, b *bank.Bank) error {
	source := path
	if source == "" {
		source = "built-in"
	}
	if _, err := fmt.Fprintf(w, "Question bank: %s\n", source); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, key := range b.Keys() {
		tier, err := b.Lookup(key)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  %-8s %-8s %2ds per question  %d questions\n",
			key, tier.Config.Name, tier.Config.TimeLimit, len(tier.Questions)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
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
	return fmt.Sprintf(`# cyberguard configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# questions = ""           # Question bank TOML file (empty: built-in bank)
# shuffle = false          # Shuffle questions and answer options
# sound = true             # Ring the terminal bell on answers
# skip-intro = false       # Skip the boot sequence
# certificate-dir = %q
# player = ""              # Prefill the player name
`,
		config.DefaultCertificateDir(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
