package set

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"resale/client/internal/api"
	"resale/client/internal/cmdutil"
)

func NewSetConfigCmd(svc api.Service) *cobra.Command {
	var full string
	var incremental string
	var auto string
	var retention int
	var cron string
	cmd := &cobra.Command{
		Use:     "set",
		Short:   "Change the backup configuration",
		Long:    "Update one or more backup configuration fields. Unset flags leave the current value in place",
		Example: "resale config set --auto on --incremental every2hours --retention 14",
		Run: func(cmd *cobra.Command, args []string) {
			params := api.UpdateBackupConfigParams{}
			if cmd.Flags().Changed("full") {
				params.FullBackupFrequency = &full
			}
			if cmd.Flags().Changed("incremental") {
				params.IncrementalBackupFrequency = &incremental
			}
			if cmd.Flags().Changed("auto") {
				enabled := auto == "on" || auto == "true"
				params.AutoBackupEnabled = &enabled
			}
			if cmd.Flags().Changed("retention") {
				params.RetentionDays = &retention
			}
			if cmd.Flags().Changed("cron") {
				params.CronExpression = &cron
			}

			cmdutil.StartLoading("Working...")
			defer cmdutil.StopLoading()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := svc.UpdateBackupConfig(ctx, params); err != nil {
				cmdutil.PrintE("Update failed: " + err.Error())
				return
			}
			cmdutil.PrintS("Backup configuration updated")
		},
	}

	cmd.Flags().StringVar(&full, "full", "", "Full backup frequency: daily or weekly")
	cmd.Flags().StringVar(&incremental, "incremental", "", "Incremental frequency: hourly, every2hours, every4hours or daily")
	cmd.Flags().StringVar(&auto, "auto", "", "Auto backup: on or off")
	cmd.Flags().IntVar(&retention, "retention", 0, "Days to keep backups")
	cmd.Flags().StringVar(&cron, "cron", "", "Cron expression overriding the scheduler cadence, empty to clear")
	return cmd
}
