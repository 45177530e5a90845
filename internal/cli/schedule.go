package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/singleflight"

	"github.com/MimeLyc/tagged-doc-translator/internal/config"
	"github.com/MimeLyc/tagged-doc-translator/pkg/log"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run translation passes on a cron schedule",
	Long: `Run translation passes repeatedly on the CRON_EXPR schedule
until interrupted. If a pass is still running when the next tick fires,
the tick joins the in-flight pass instead of starting a second one.`,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().String("cron", "", "Cron expression; overrides CRON_EXPR")
	scheduleCmd.Flags().Bool("immediate", false, "Run one pass immediately before waiting for the first tick")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return err
	}
	if expr, _ := cmd.Flags().GetString("cron"); expr != "" {
		cfg.Translate.CronExpr = expr
	}

	ctx := cmd.Context()
	var group singleflight.Group
	pass := func() {
		// Overlapping ticks collapse into the running pass.
		_, _, _ = group.Do("translate-pass", func() (interface{}, error) {
			summary, err := executeRun(ctx, cfg)
			if err != nil {
				log.Error("scheduled pass failed: %v", err)
				return nil, err
			}
			return summary, nil
		})
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Translate.CronExpr, pass); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Info("scheduler started with %q", cfg.Translate.CronExpr)

	if immediate, _ := cmd.Flags().GetBool("immediate"); immediate {
		go pass()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-ctx.Done():
	case sig := <-stop:
		log.Info("received %s, shutting down", sig)
	}
	return nil
}
