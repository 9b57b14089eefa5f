package del

import (
	"context"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"resale/client/internal/api"
	"resale/client/internal/cmdutil"
)

func NewDeleteBackupCmd(svc api.Service) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:     "delete",
		Short:   "Delete a backup",
		Long:    "Delete a backup record and its archive from storage",
		Example: "resale backups delete --id <backup_id>",
		Run: func(cmd *cobra.Command, args []string) {
			p := promptui.Prompt{
				Label:     "Delete backup " + id + ". Continue",
				IsConfirm: true,
			}
			if _, err := p.Run(); err != nil {
				cmdutil.Print("Aborted")
				return
			}

			cmdutil.StartLoading("Deleting...")
			defer cmdutil.StopLoading()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := svc.DeleteBackup(ctx, id); err != nil {
				cmdutil.PrintE("Delete failed: " + err.Error())
				return
			}
			cmdutil.PrintS("Backup deleted")
		},
	}

	cmd.Flags().StringVarP(&id, "id", "i", "", "ID of the backup to delete")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
