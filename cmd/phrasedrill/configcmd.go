package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/phrasedrill/internal/config"
	"github.com/verte-zerg/phrasedrill/internal/speech"
	"github.com/verte-zerg/phrasedrill/internal/stats"
	"github.com/verte-zerg/phrasedrill/internal/store"
)

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
	if err := writeConfigTemplate(path); err != nil {
		return err
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

// writeConfigTemplate creates the config file unless it already exists.
func writeConfigTemplate(path string) error {
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
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# phrasedrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[playback]
# rate = %.1f               # Source speech rate (0.5-2.0); unset uses the last rate chosen in the TUI
# target = true            # Speak the target phrase after the pause
# source-lang = %q     # BCP 47 tag of the source language
# target-lang = %q     # BCP 47 tag of the target language
# target-rate = %.1f        # Target speech rate (0.5-2.0)

[speech]
# engine = %q          # espeak or simulated
# voice-source = ""        # espeak-ng voice override for the source language
# voice-target = ""        # espeak-ng voice override for the target language
# words-per-minute = %d   # espeak-ng speed at rate 1.0

[stats]
# cap = %d                 # Listens after which a phrase is mastered
# slots = %d               # Tracked phrases per collection

[ui]
# theme = %q          # light or dark
`,
		store.DefaultRate,
		defaultSourceLang,
		defaultTargetLang,
		defaultTargetRate,
		defaultEngine,
		speech.DefaultWordsPerMinute,
		stats.DefaultCap,
		stats.DefaultSlots,
		store.ThemeLight,
	)
}
