package create

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"resale/client/internal/api"
	"resale/client/internal/cmdutil"
)

func NewCreateBackupCmd(svc api.Service) *cobra.Command {
	var backupType string
	var includeExternal bool
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a backup now",
		Long:    "Run a manual backup. Without --type the server picks full or incremental based on the backup history",
		Example: "resale backups create --type full",
		Run: func(cmd *cobra.Command, args []string) {
			cmdutil.StartLoading("Backing up...")
			defer cmdutil.StopLoading()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			backup, err := svc.CreateBackup(ctx, api.CreateBackupParams{
				Type:                   backupType,
				IncludeExternalContent: includeExternal,
			})
			if err != nil {
				cmdutil.PrintE("Backup failed: " + err.Error())
				return
			}

			cmdutil.PrintS("Backup created: " + backup.ID.String() + " (" + backup.Type + ", " + backup.SizeFormatted + ")")
		},
	}

	cmd.Flags().StringVarP(&backupType, "type", "t", "", "Backup type: full or incremental (default: decided by the server)")
	cmd.Flags().BoolVar(&includeExternal, "include-external", false, "Snapshot commerce platform content even for an incremental backup")
	return cmd
}
