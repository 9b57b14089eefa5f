package backups

import (
	"github.com/spf13/cobra"

	"resale/client/internal/api"
	"resale/client/pkg/cmd/backups/create"
	"resale/client/pkg/cmd/backups/del"
	"resale/client/pkg/cmd/backups/download"
	"resale/client/pkg/cmd/backups/list"
	"resale/client/pkg/cmd/backups/restore"
)

func NewBackupsCmd(svc api.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "Manage backups",
	}

	cmd.AddCommand(list.NewListBackupsCmd(svc))
	cmd.AddCommand(create.NewCreateBackupCmd(svc))
	cmd.AddCommand(restore.NewRestoreBackupCmd(svc))
	cmd.AddCommand(del.NewDeleteBackupCmd(svc))
	cmd.AddCommand(download.NewDownloadBackupCmd(svc))
	return cmd
}
