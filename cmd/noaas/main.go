package main

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kindled/noaas/internal/api"
	"github.com/kindled/noaas/internal/bot"
	"github.com/kindled/noaas/internal/classify"
	"github.com/kindled/noaas/internal/pick"
	"github.com/kindled/noaas/internal/reason"
	"github.com/kindled/noaas/internal/store"
	"github.com/kindled/noaas/internal/ui"
)

// Set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func buildVersion() string {
	if commit == "none" {
		return version
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

func main() {
	var (
		noColor    bool
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:   "noaas",
		Short: "noaas — No-as-a-Service",
		Long:  "Serves short, classified reasons to say no over HTTP, Discord, and the terminal.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ui.Init(noColor)
		},
	}

	rootCmd.Version = buildVersion()
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "noaas.yaml", "Config file path")

	rootCmd.AddGroup(
		&cobra.Group{ID: "serve", Title: "Serving:"},
		&cobra.Group{ID: "data", Title: "Dataset:"},
	)

	serveC := serveCmd(&configPath)
	serveC.GroupID = "serve"
	botC := botCmd(&configPath)
	botC.GroupID = "serve"
	pickC := pickCmd(&configPath)
	pickC.GroupID = "serve"

	labelC := labelCmd(&configPath)
	labelC.GroupID = "data"
	validateC := validateCmd(&configPath)
	validateC.GroupID = "data"
	statsC := statsCmd(&configPath)
	statsC.GroupID = "data"

	rootCmd.AddCommand(serveC, botC, pickC, labelC, validateC, statsC)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openLibrary loads the dataset into a library. A broken dataset is
// reported but still yields a running (empty) service.
func openLibrary(cfg store.Config) *store.Library {
	lib := store.NewLibrary(cfg.Data.Path)
	n, err := lib.Reload()
	if err != nil {
		ui.Logger.Error("could not load dataset, serving empty corpus", "path", cfg.Data.Path, "err", err)
		return lib
	}
	ui.Logger.Info("dataset loaded", "path", cfg.Data.Path, "reasons", n)
	return lib
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and embedded web page",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig(*configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			lib := openLibrary(cfg)
			if cfg.Data.Watch {
				go func() {
					if err := lib.Watch(ctx); err != nil && ctx.Err() == nil {
						ui.Logger.Warn("dataset watch stopped", "err", err)
					}
				}()
			}

			return api.New(lib, cfg.Server).Run(ctx)
		},
	}
}

func botCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Discord bot (needs DISCORD_TOKEN)",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := os.Getenv("DISCORD_TOKEN")
			if token == "" {
				return fmt.Errorf("missing DISCORD_TOKEN in environment")
			}

			cfg, err := store.LoadConfig(*configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			lib := openLibrary(cfg)
			if cfg.Data.Watch {
				go func() {
					if err := lib.Watch(ctx); err != nil && ctx.Err() == nil {
						ui.Logger.Warn("dataset watch stopped", "err", err)
					}
				}()
			}

			b, err := bot.New(token, lib, cfg.Bot)
			if err != nil {
				return err
			}
			if err := b.Run(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		},
	}
}

func pickCmd(configPath *string) *cobra.Command {
	var types, tones, topics, tags []string

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Print one random reason in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			corpus, err := store.Load(cfg.Data.Path)
			if err != nil {
				return err
			}

			res := pick.Pick(corpus, pick.Filter{
				Types:  types,
				Tones:  tones,
				Topics: topics,
				Tags:   tags,
			})
			switch res.Outcome {
			case pick.EmptyCorpus:
				fmt.Println(ui.Yellow("No reasons loaded yet — run `noaas label` over a dataset first."))
			case pick.NoMatch:
				fmt.Println(ui.Yellow("Nothing matches those filters. Try removing one."))
			default:
				fmt.Println(ui.ReasonCard(res.Reason))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&types, "type", nil, "Allowed types")
	cmd.Flags().StringSliceVar(&tones, "tone", nil, "Allowed tones")
	cmd.Flags().StringSliceVar(&topics, "topic", nil, "Allowed topics")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tags to match (any overlap)")
	return cmd
}

func labelCmd(configPath *string) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "label",
		Short: "Classify every reason and write the dataset back",
		Long: "Runs the lexical labeler over the dataset: assigns type, tone, topic, " +
			"tags, and ids, verifies id consistency, and rewrites the file in place.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			corpus, err := store.Load(cfg.Data.Path)
			if err != nil {
				return err
			}
			if len(corpus) == 0 {
				return fmt.Errorf("nothing to label at %s", cfg.Data.Path)
			}

			changed := 0
			labeled := make(reason.Corpus, 0, len(corpus))
			for _, r := range corpus {
				out := classify.Apply(r)
				if out.Type != r.Type || out.Tone != r.Tone || out.Topic != r.Topic {
					changed++
				}
				labeled = append(labeled, out)
			}

			if err := reason.Validate(labeled); err != nil {
				return fmt.Errorf("labeling aborted: %w", err)
			}

			if check {
				ui.Status(fmt.Sprintf("%d reasons, %d would change labels (no write)", len(labeled), changed))
				printDistribution(labeled)
				return nil
			}

			if err := store.Save(cfg.Data.Path, labeled); err != nil {
				return err
			}
			ui.Logger.Info("dataset labeled", "path", cfg.Data.Path, "reasons", len(labeled), "relabeled", changed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Report label changes without writing")
	return cmd
}

func validateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the dataset for id collisions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			corpus, err := store.Load(cfg.Data.Path)
			if err != nil {
				return err
			}
			if err := reason.Validate(corpus); err != nil {
				return err
			}
			fmt.Println(ui.Green(fmt.Sprintf("✓ %d reasons, ids consistent", len(corpus))))
			return nil
		},
	}
}

func statsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the label distribution of the dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			corpus, err := store.Load(cfg.Data.Path)
			if err != nil {
				return err
			}
			if len(corpus) == 0 {
				fmt.Println(ui.Yellow("Dataset is empty."))
				return nil
			}

			fmt.Printf("%s %d reasons\n\n", ui.Bold("Total:"), len(corpus))
			printDistribution(corpus)
			return nil
		},
	}
}

func printDistribution(corpus reason.Corpus) {
	types := make(map[string]int)
	tones := make(map[string]int)
	topics := make(map[string]int)
	tags := make(map[string]int)
	for _, r := range corpus {
		types[string(r.Type)]++
		tones[string(r.Tone)]++
		topics[string(r.Topic)]++
		for _, t := range r.Tags {
			tags[t]++
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	section := func(name string, counts map[string]int) {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if counts[keys[i]] != counts[keys[j]] {
				return counts[keys[i]] > counts[keys[j]]
			}
			return keys[i] < keys[j]
		})
		fmt.Fprintf(w, "%s\t\n", ui.Bold(name))
		for _, k := range keys {
			fmt.Fprintf(w, "  %s\t%d\n", k, counts[k])
		}
		fmt.Fprintf(w, "\t\n")
	}

	section("type", types)
	section("tone", tones)
	section("topic", topics)
	section("tags", tags)
	w.Flush()
}
