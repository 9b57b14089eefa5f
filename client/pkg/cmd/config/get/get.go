package get

import (
	"context"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"resale/client/internal/api"
	"resale/client/internal/cmdutil"
)

func NewGetConfigCmd(svc api.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the backup configuration",
		Run: func(cmd *cobra.Command, args []string) {
			cmdutil.StartLoading("Working...")
			defer cmdutil.StopLoading()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			cfg, err := svc.GetBackupConfig(ctx)
			if err != nil {
				cmdutil.PrintE(err.Error())
				return
			}

			tw := table.NewWriter()
			tw.AppendRow(table.Row{"Full backup frequency", cfg.FullBackupFrequency})
			tw.AppendRow(table.Row{"Incremental frequency", cfg.IncrementalBackupFrequency})
			tw.AppendRow(table.Row{"Auto backup", fmt.Sprintf("%t", cfg.AutoBackupEnabled)})
			tw.AppendRow(table.Row{"Retention days", fmt.Sprintf("%d", cfg.RetentionDays)})
			if cfg.CronExpression != "" {
				tw.AppendRow(table.Row{"Cron override", cfg.CronExpression})
			}
			if cfg.UpdatedBy != "" {
				tw.AppendRow(table.Row{"Last updated by", cfg.UpdatedBy})
			}
			cmdutil.Print("")
			cmdutil.Print(tw.Render())
		},
	}
}
