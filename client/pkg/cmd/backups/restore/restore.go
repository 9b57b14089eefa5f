package restore

import (
	"context"
	"fmt"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"resale/client/internal/api"
	"resale/client/internal/cmdutil"
)

func NewRestoreBackupCmd(svc api.Service) *cobra.Command {
	var id string
	var collections []string
	cmd := &cobra.Command{
		Use:     "restore",
		Short:   "Restore a backup",
		Long:    "Replace live collection contents with a backup's snapshot. Restored collections lose every document written after the backup was taken. Use --collections to restore a subset",
		Example: "resale backups restore --id <backup_id> --collections products,customers",
		Run: func(cmd *cobra.Command, args []string) {
			p := promptui.Prompt{
				Label:     "Restoring overwrites live data with the backup's contents. Continue",
				IsConfirm: true,
			}
			if _, err := p.Run(); err != nil {
				cmdutil.Print("Aborted")
				return
			}

			cmdutil.StartLoading("Restoring...")
			defer cmdutil.StopLoading()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			result, err := svc.RestoreBackup(ctx, id, api.RestoreParams{Collections: collections})
			if err != nil {
				cmdutil.PrintE("Restore failed: " + err.Error())
				return
			}

			for _, c := range result.RestoredCollections {
				cmdutil.Print(fmt.Sprintf("restored %s: %d documents", c.Name, c.Count))
			}
			if result.ExternalStatus != "" {
				cmdutil.Print(result.ExternalStatus)
			}
			cmdutil.PrintS("Restore completed")
		},
	}

	cmd.Flags().StringVarP(&id, "id", "i", "", "ID of the backup to restore")
	cmd.Flags().StringSliceVarP(&collections, "collections", "c", nil, "Restore only these collections")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
