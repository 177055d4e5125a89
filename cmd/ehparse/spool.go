package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/slinet/ehparse/internal/spool"
)

var (
	spoolInbox   string
	spoolOutbox  string
	spoolWorkers int
)

var spoolCmd = &cobra.Command{
	Use:   "spool",
	Short: "Convert every pending page in the inbox once",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc := cfg.Spool
		if spoolInbox != "" {
			sc.Inbox = spoolInbox
		}
		if spoolOutbox != "" {
			sc.Outbox = spoolOutbox
		}
		if spoolWorkers > 0 {
			sc.Workers = spoolWorkers
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		res, err := spool.New(sc, p, log.Named("spool")).Run(ctx)
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), res)
	},
}

func init() {
	spoolCmd.Flags().StringVar(&spoolInbox, "inbox", "", "override spool.inbox")
	spoolCmd.Flags().StringVar(&spoolOutbox, "outbox", "", "override spool.outbox")
	spoolCmd.Flags().IntVar(&spoolWorkers, "workers", 0, "override spool.workers")
}
