package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/phrasedrill/internal/collection"
	"github.com/verte-zerg/phrasedrill/internal/config"
	"github.com/verte-zerg/phrasedrill/internal/model"
	"github.com/verte-zerg/phrasedrill/internal/phrasefile"
	"github.com/verte-zerg/phrasedrill/internal/playback"
	"github.com/verte-zerg/phrasedrill/internal/stats"
)

var (
	listenCollection string
	listenCycles     int

	statsCollection string
	statsWidth      int

	collectionsFile string
)

// withApp resolves configuration, opens the store and logs to stderr for the
// duration of fn.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg.Debug, "")
	if err != nil {
		return err
	}
	defer closeLog()
	a, err := openApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}

// resolveCollection accepts an exact collection name or a 1-based position.
func resolveCollection(repo *collection.Repository, arg string) (int, error) {
	for i, name := range repo.Names() {
		if name == arg {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= repo.Len() {
		return n - 1, nil
	}
	return 0, fmt.Errorf("unknown collection %q", arg)
}

func newListenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Play a collection without the TUI",
		Args:  cobra.NoArgs,
		RunE:  runListenCmd,
	}
	cmd.Flags().StringVar(&listenCollection, "collection", "1", "collection name or position")
	cmd.Flags().IntVar(&listenCycles, "cycles", 0, "stop after N phrases (0 = until interrupted)")
	return cmd
}

func runListenCmd(cmd *cobra.Command, _ []string) error {
	if listenCycles < 0 {
		return fmt.Errorf("--cycles must be >= 0")
	}
	return withApp(cmd, func(a *app) error {
		index, err := resolveCollection(a.repo, listenCollection)
		if err != nil {
			return err
		}
		speaker := a.newSpeaker()
		defer func() {
			if cerr := speaker.Close(); cerr != nil {
				a.log.Error("failed to close speaker", "err", cerr)
			}
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		engine := a.newEngine(speaker)
		engine.SelectCollection(index)
		engine.OnChange(listenPrinter(cmd.OutOrStdout(), a.log, listenCycles, cancel))
		engine.Play()
		if !engine.IsPlaying() {
			return fmt.Errorf("%s in %q", strings.ToLower(playback.NoPhrases), a.repo.Names()[index])
		}

		err = playback.Run(ctx, engine, speaker.Done())
		engine.Stop()
		if ctx.Err() != nil {
			return nil
		}
		return err
	})
}

// listenPrinter prints each phrase as its source starts and cancels after
// limit completed phrases when limit is positive.
func listenPrinter(w io.Writer, logger *log.Logger, limit int, cancel context.CancelFunc) func(playback.Snapshot) {
	prev := playback.Idle
	started := 0
	return func(s playback.Snapshot) {
		entered := s.State == playback.SpeakingSource && prev != playback.SpeakingSource
		prev = s.State
		if !entered || !s.HasPhrase {
			return
		}
		if limit > 0 && started == limit {
			cancel()
			return
		}
		started++
		if _, err := fmt.Fprintf(w, "[%d/%d] %s  →  %s\n", s.PhraseIndex+1, s.PhraseCount, s.Phrase.Source, s.Phrase.Target); err != nil {
			logger.Debug("failed to write phrase", "err", err)
		}
	}
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show listen counts",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsCollection, "collection", "", "collection name or position (default: all)")
	cmd.Flags().IntVar(&statsWidth, "width", 0, "progress bar width (default: terminal width)")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app) error {
		cfg := model.StatsConfig{Collection: -1, Width: statsWidth}
		if statsCollection != "" {
			index, err := resolveCollection(a.repo, statsCollection)
			if err != nil {
				return err
			}
			cfg.Collection = index
		}
		if cfg.Width <= 0 {
			cfg.Width = stats.TerminalWidth()
		}

		counts := make([]int, a.repo.Len())
		for i := range counts {
			counts[i] = a.repo.PhraseCount(i)
		}
		a.listens.EnsureAll(counts)

		out := cmd.OutOrStdout()
		if cfg.Collection >= 0 {
			c, _ := a.repo.Collection(cfg.Collection)
			return stats.RenderTable(out, cfg.Collection, c, a.listens)
		}
		return stats.RenderSummary(out, a.repo.Names(), a.listens, cfg.Width)
	})
}

func newCollectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"c"},
		Short:   "Manage phrase collections",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				for i, name := range a.repo.Names() {
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d phrases\n", i+1, name, a.repo.PhraseCount(i)); err != nil {
						return fmt.Errorf("failed to write output: %w", err)
					}
				}
				return nil
			})
		},
	}

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a collection, optionally from a phrase file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var phrases []model.Phrase
			if collectionsFile != "" {
				loaded, err := phrasefile.Load(collectionsFile)
				if err != nil {
					return fmt.Errorf("failed to load phrase file: %w", err)
				}
				phrases = loaded
			}
			return withEditEngine(cmd, func(a *app, e *playback.Engine) error {
				if err := e.AddCollection(args[0], phrases); err != nil {
					return err
				}
				logErrf("Added %q with %d phrases\n", args[0], len(phrases))
				return nil
			})
		},
	}
	add.Flags().StringVar(&collectionsFile, "file", "", "tab-separated phrase file to import")

	rm := &cobra.Command{
		Use:   "rm COLLECTION",
		Short: "Remove a collection and its listen counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEditEngine(cmd, func(a *app, e *playback.Engine) error {
				index, err := resolveCollection(a.repo, args[0])
				if err != nil {
					return err
				}
				return e.RemoveCollection(index)
			})
		},
	}

	rename := &cobra.Command{
		Use:   "rename COLLECTION NEW_NAME",
		Short: "Rename a collection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEditEngine(cmd, func(a *app, e *playback.Engine) error {
				index, err := resolveCollection(a.repo, args[0])
				if err != nil {
					return err
				}
				return e.RenameCollection(index, args[1])
			})
		},
	}

	export := &cobra.Command{
		Use:   "export COLLECTION",
		Short: "Print a collection as a tab-separated phrase file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				index, err := resolveCollection(a.repo, args[0])
				if err != nil {
					return err
				}
				return phrasefile.Write(cmd.OutOrStdout(), a.repo.Phrases(index))
			})
		},
	}

	cmd.AddCommand(list, add, rm, rename, export)
	return cmd
}

func newPhrasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "phrases",
		Aliases: []string{"p"},
		Short:   "Manage the phrases of a collection",
	}

	list := &cobra.Command{
		Use:   "list COLLECTION",
		Short: "List phrases with listen counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				index, err := resolveCollection(a.repo, args[0])
				if err != nil {
					return err
				}
				a.listens.EnsureShape(index, a.repo.PhraseCount(index))
				c, _ := a.repo.Collection(index)
				return stats.RenderTable(cmd.OutOrStdout(), index, c, a.listens)
			})
		},
	}

	add := &cobra.Command{
		Use:   "add COLLECTION SOURCE TARGET",
		Short: "Append a phrase",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEditEngine(cmd, func(a *app, e *playback.Engine) error {
				index, err := resolveCollection(a.repo, args[0])
				if err != nil {
					return err
				}
				return e.AddPhrase(index, model.Phrase{Source: strings.TrimSpace(args[1]), Target: strings.TrimSpace(args[2])})
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm COLLECTION POSITION",
		Short: "Remove the phrase at a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}
			return withEditEngine(cmd, func(a *app, e *playback.Engine) error {
				index, err := resolveCollection(a.repo, args[0])
				if err != nil {
					return err
				}
				return e.RemovePhrase(index, pos-1)
			})
		},
	}

	cmd.AddCommand(list, add, rm)
	return cmd
}

func withEditEngine(cmd *cobra.Command, fn func(a *app, e *playback.Engine) error) error {
	return withApp(cmd, func(a *app) error {
		engine, speaker := a.editEngine()
		defer func() {
			if cerr := speaker.Close(); cerr != nil {
				a.log.Error("failed to close speaker", "err", cerr)
			}
		}()
		return fn(a, engine)
	})
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show file locations and stored keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app) error {
				out := cmd.OutOrStdout()
				lines := []string{
					"config: " + config.DefaultConfigPath(),
					"data:   " + a.cfg.DataPath,
					"log:    " + config.DefaultLogPath(),
				}
				if a.db != nil {
					keys, err := a.db.Keys(cmd.Context())
					if err != nil {
						return fmt.Errorf("failed to list keys: %w", err)
					}
					lines = append(lines, "keys:   "+strings.Join(keys, ", "))
				}
				_, err := fmt.Fprintln(out, strings.Join(lines, "\n"))
				return err
			})
		},
	}
}
