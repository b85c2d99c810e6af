// Package main provides the CLI entrypoint for phrasedrill.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/phrasedrill/internal/config"
	"github.com/verte-zerg/phrasedrill/internal/model"
	"github.com/verte-zerg/phrasedrill/internal/playback"
	"github.com/verte-zerg/phrasedrill/internal/speech"
	"github.com/verte-zerg/phrasedrill/internal/stats"
	"github.com/verte-zerg/phrasedrill/internal/store"
	"github.com/verte-zerg/phrasedrill/internal/tui"
)

const (
	defaultSourceLang = "en-US"
	defaultTargetLang = "ru-RU"
	defaultTargetRate = 1.0
	defaultEngine     = "espeak"
)

var (
	drillRate        float64
	drillTarget      bool
	drillSourceLang  string
	drillTargetLang  string
	drillTargetRate  float64
	drillEngine      string
	drillVoiceSource string
	drillVoiceTarget string
	drillWPM         int
	drillStatsCap    int
	drillStatsSlots  int
	drillTheme       string

	dataPath  string
	ephemeral bool
	debug     bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "phrasedrill",
		Short:         "Listen-and-repeat phrase trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runDrillCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.Float64Var(&drillRate, "rate", store.DefaultRate, "source speech rate (0.5-2.0, default: stored preference)")
	flags.BoolVar(&drillTarget, "target", true, "speak the target phrase (default: stored preference)")
	flags.StringVar(&drillSourceLang, "source-lang", defaultSourceLang, "BCP 47 tag of the source language")
	flags.StringVar(&drillTargetLang, "target-lang", defaultTargetLang, "BCP 47 tag of the target language")
	flags.Float64Var(&drillTargetRate, "target-rate", defaultTargetRate, "target speech rate (0.5-2.0)")
	flags.StringVar(&drillEngine, "engine", defaultEngine, "speech engine: espeak or simulated")
	flags.StringVar(&drillVoiceSource, "voice-source", "", "espeak-ng voice for the source language")
	flags.StringVar(&drillVoiceTarget, "voice-target", "", "espeak-ng voice for the target language")
	flags.IntVar(&drillWPM, "wpm", speech.DefaultWordsPerMinute, "espeak-ng words per minute at rate 1.0")
	flags.IntVar(&drillStatsCap, "stats-cap", stats.DefaultCap, "listens after which a phrase is mastered")
	flags.IntVar(&drillStatsSlots, "stats-slots", stats.DefaultSlots, "tracked phrases per collection")
	flags.StringVar(&drillTheme, "theme", "", "light or dark (default: stored preference)")
	flags.StringVar(&dataPath, "data", "", "database path (default: XDG data dir)")
	flags.BoolVar(&ephemeral, "ephemeral", false, "keep all data in memory")
	flags.BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newListenCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newCollectionsCmd())
	rootCmd.AddCommand(newPhrasesCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newInfoCmd())

	return rootCmd
}

func runDrillCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg.Debug, config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer closeLog()

	a, err := openApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	speaker := a.newSpeaker()
	defer func() {
		if cerr := speaker.Close(); cerr != nil {
			logger.Error("failed to close speaker", "err", cerr)
		}
	}()

	engine := a.newEngine(speaker)
	m := tui.NewModel(tui.Options{
		Engine:     engine,
		Repo:       a.repo,
		Listens:    a.listens,
		Prefs:      a.prefs,
		Done:       speaker.Done(),
		TargetLang: cfg.TargetLang,
		Logger:     logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	engine.Stop()
	return nil
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "rate", &drillRate, fileCfg.Playback.Rate)
	applyBoolConfig(cmd, "target", &drillTarget, fileCfg.Playback.Target)
	applyStringConfig(cmd, "source-lang", &drillSourceLang, fileCfg.Playback.SourceLang)
	applyStringConfig(cmd, "target-lang", &drillTargetLang, fileCfg.Playback.TargetLang)
	applyFloatConfig(cmd, "target-rate", &drillTargetRate, fileCfg.Playback.TargetRate)
	applyStringConfig(cmd, "engine", &drillEngine, fileCfg.Speech.Engine)
	applyStringConfig(cmd, "voice-source", &drillVoiceSource, fileCfg.Speech.VoiceSource)
	applyStringConfig(cmd, "voice-target", &drillVoiceTarget, fileCfg.Speech.VoiceTarget)
	applyIntConfig(cmd, "wpm", &drillWPM, fileCfg.Speech.WordsPerMin)
	applyIntConfig(cmd, "stats-cap", &drillStatsCap, fileCfg.Stats.Cap)
	applyIntConfig(cmd, "stats-slots", &drillStatsSlots, fileCfg.Stats.Slots)
	applyStringConfig(cmd, "theme", &drillTheme, fileCfg.UI.Theme)

	cfg := model.Config{
		SourceLang:  drillSourceLang,
		TargetLang:  drillTargetLang,
		TargetRate:  drillTargetRate,
		Engine:      drillEngine,
		VoiceSource: drillVoiceSource,
		VoiceTarget: drillVoiceTarget,
		WordsPerMin: drillWPM,
		StatsCap:    drillStatsCap,
		StatsSlots:  drillStatsSlots,
		Theme:       drillTheme,
		DataPath:    dataPath,
		Ephemeral:   ephemeral,
		Debug:       debug,
	}
	// Unset rate and target toggle fall through to the stored preferences.
	if cmd.Flags().Changed("rate") || fileCfg.Playback.Rate != nil {
		cfg.Rate = drillRate
	}
	if cmd.Flags().Changed("target") || fileCfg.Playback.Target != nil {
		enabled := drillTarget
		cfg.TargetEnabled = &enabled
	}
	if cfg.DataPath == "" {
		cfg.DataPath = config.DefaultDBPath()
	}

	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Rate != 0 && (cfg.Rate < playback.MinRate || cfg.Rate > playback.MaxRate) {
		return fmt.Errorf("--rate must be between %.1f and %.1f", playback.MinRate, playback.MaxRate)
	}
	if cfg.TargetRate < playback.MinRate || cfg.TargetRate > playback.MaxRate {
		return fmt.Errorf("--target-rate must be between %.1f and %.1f", playback.MinRate, playback.MaxRate)
	}
	if _, err := speech.VoiceFor(cfg.SourceLang, ""); err != nil {
		return fmt.Errorf("--source-lang: %w", err)
	}
	if _, err := speech.VoiceFor(cfg.TargetLang, ""); err != nil {
		return fmt.Errorf("--target-lang: %w", err)
	}
	switch cfg.Engine {
	case "espeak", "simulated":
	default:
		return fmt.Errorf("--engine must be espeak or simulated")
	}
	if cfg.WordsPerMin <= 0 {
		return fmt.Errorf("--wpm must be > 0")
	}
	if cfg.StatsCap <= 0 {
		return fmt.Errorf("--stats-cap must be > 0")
	}
	if cfg.StatsSlots <= 0 {
		return fmt.Errorf("--stats-slots must be > 0")
	}
	switch cfg.Theme {
	case "", store.ThemeLight, store.ThemeDark:
	default:
		return fmt.Errorf("--theme must be light or dark")
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

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
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

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
