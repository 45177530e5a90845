package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/tagged-doc-translator/internal/config"
	"github.com/MimeLyc/tagged-doc-translator/internal/llm"
	"github.com/MimeLyc/tagged-doc-translator/internal/persistence"
	"github.com/MimeLyc/tagged-doc-translator/internal/pipeline"
	"github.com/MimeLyc/tagged-doc-translator/internal/translate"
	"github.com/MimeLyc/tagged-doc-translator/pkg/log"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Translate every pending document in the staging directory",
	Long: `Run one translation pass: discover tagged documents in the
staging directory, translate their pending lines batch by batch through
the configured service, and rewrite each document in place.

Documents whose lines are already translated are skipped, so rerunning
after a partial failure only retries what is still pending.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("direction", "", "Translation direction (ja-zh, en-zh, auto); overrides TRANSLATE_DIRECTION")
	runCmd.Flags().String("docs-dir", "", "Staging directory; overrides DOCS_DIR")
	runCmd.Flags().Bool("keep-artifacts", false, "Keep request/response/error artifacts from earlier runs")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if keep, _ := cmd.Flags().GetBool("keep-artifacts"); !keep {
		staging := cfg.Staging
		if err := pipeline.ClearDirs(staging.RequestDir, staging.ResponseDir, staging.ErrorDir); err != nil {
			return err
		}
	}

	summary, err := executeRun(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed", summary.Failed, summary.Total)
	}
	return nil
}

// loadConfig builds the run configuration from the environment plus any
// command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var opts []config.Option
	if direction, _ := cmd.Flags().GetString("direction"); direction != "" {
		opts = append(opts, func(c *config.Config) { c.Translate.Direction = direction })
	}
	if docsDir, _ := cmd.Flags().GetString("docs-dir"); docsDir != "" {
		opts = append(opts, func(c *config.Config) { c.Staging.DocsDir = docsDir })
	}
	return config.NewFromEnv(opts...)
}

// executeRun performs one full pass over the staging directory and
// records the outcomes in the run ledger.
func executeRun(ctx context.Context, cfg *config.Config) (pipeline.Summary, error) {
	paths, err := pipeline.DiscoverDocuments(cfg.Staging.DocsDir)
	if err != nil {
		return pipeline.Summary{}, err
	}
	if len(paths) == 0 {
		log.Info("no documents in %s, nothing to do", cfg.Staging.DocsDir)
		return pipeline.Summary{}, nil
	}
	log.Info("found %d documents in %s", len(paths), cfg.Staging.DocsDir)

	client, err := llm.NewClient(&llm.Config{
		APIKey:      cfg.LLM.APIKey,
		APIURL:      cfg.LLM.APIURL,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		AppName:     "tagged-doc-translator",
	})
	if err != nil {
		return pipeline.Summary{}, err
	}

	translator := translate.NewClient(client, cfg.Translate.TargetLanguage,
		cfg.Translate.MaxRetries, time.Duration(cfg.Translate.RetryBackoffSeconds)*time.Second)

	sink := pipeline.NewDirSink(cfg.Staging.RequestDir, cfg.Staging.ResponseDir, cfg.Staging.ErrorDir)
	tracker := pipeline.NewTracker()
	runner := pipeline.NewRunner(translator, sink, tracker, pipeline.Options{
		Direction:           cfg.Translate.Direction,
		BatchSize:           cfg.Translate.BatchSize,
		TermRelevanceCount:  cfg.Translate.TermRelevanceCount,
		SoundRelevanceCount: cfg.Translate.SoundRelevanceCount,
		GlossaryDir:         cfg.Staging.GlossaryDir,
		ExportDir:           cfg.Staging.ExportDir,
	})

	stopProgress := reportProgress(tracker)
	startedAt := time.Now()
	results := pipeline.RunAll(ctx, runner, paths, cfg.Translate.WorkerCount)
	finishedAt := time.Now()
	stopProgress()

	recordResults(ctx, cfg.Staging.LedgerPath, results, startedAt, finishedAt)

	summary := pipeline.Summarize(tracker.Snapshot())
	log.Info("run finished in %s: %d completed, %d failed, %d skipped of %d documents",
		finishedAt.Sub(startedAt).Round(time.Second),
		summary.Completed, summary.Failed, summary.Skipped, summary.Total)
	for _, result := range results {
		if result.Err != nil {
			log.Error("  %s: %v", filepath.Base(result.Path), result.Err)
		}
	}
	return summary, nil
}

// reportProgress logs a run-level progress line every few seconds until
// the returned stop function is called.
func reportProgress(tracker *pipeline.Tracker) func() {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s := pipeline.Summarize(tracker.Snapshot())
				log.Info("progress: %d/%d documents done, %d/%d lines processed",
					s.Completed+s.Failed+s.Skipped, s.Total, s.LinesDone, s.Lines)
			}
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}

// recordResults appends every document outcome to the SQLite ledger.
// Ledger problems are logged, never fatal: the translations themselves
// are already on disk.
func recordResults(ctx context.Context, ledgerPath string, results []pipeline.FileResult, startedAt, finishedAt time.Time) {
	store, err := persistence.NewSQLiteStore(ledgerPath)
	if err != nil {
		log.Warn("run ledger unavailable: %v", err)
		return
	}
	defer store.Close()

	for _, result := range results {
		errText := ""
		if result.Err != nil {
			errText = result.Err.Error()
		}
		record := persistence.RunRecord{
			Path:         result.Path,
			Direction:    string(result.Direction),
			Status:       string(result.Status),
			Translatable: result.Translatable,
			Success:      result.Success,
			Failed:       result.Failed,
			Error:        errText,
			StartedAt:    startedAt,
			FinishedAt:   finishedAt,
		}
		if err := store.RecordRun(ctx, record); err != nil {
			log.Warn("failed to record run for %s: %v", filepath.Base(result.Path), err)
		}
	}
}

var historyCmd = &cobra.Command{
	Use:   "history [document...]",
	Short: "Show recent run ledger entries",
	Long: `With no arguments, list the most recent ledger entries. With
document names or paths, show the last recorded run of each.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewFromEnv()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := persistence.NewSQLiteStore(cfg.Staging.LedgerPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) > 0 {
			return printLastRuns(cmd.Context(), os.Stdout, store, cfg.Staging.DocsDir, args)
		}

		records, err := store.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		for _, r := range records {
			fmt.Fprintln(os.Stdout, formatRecord(r))
		}
		return nil
	},
}

// printLastRuns shows the most recent ledger entry for each named
// document. A bare name is also tried under the staging directory.
func printLastRuns(ctx context.Context, w io.Writer, store *persistence.SQLiteStore, docsDir string, names []string) error {
	for _, name := range names {
		record, err := store.LastRun(ctx, name)
		if err != nil {
			return err
		}
		if record == nil && !strings.ContainsAny(name, `/\`) {
			if record, err = store.LastRun(ctx, filepath.Join(docsDir, name)); err != nil {
				return err
			}
		}
		if record == nil {
			fmt.Fprintf(w, "%s: no recorded runs\n", name)
			continue
		}
		fmt.Fprintln(w, formatRecord(*record))
	}
	return nil
}

func formatRecord(r persistence.RunRecord) string {
	return fmt.Sprintf("%s  %-9s  %-5s  %4d ok %4d failed  %s",
		r.FinishedAt.Local().Format("2006-01-02 15:04:05"),
		r.Status, r.Direction, r.Success, r.Failed, filepath.Base(r.Path))
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "Maximum number of entries to show")
}
