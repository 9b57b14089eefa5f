package download

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"resale/client/internal/api"
	"resale/client/internal/cmdutil"
)

func NewDownloadBackupCmd(svc api.Service) *cobra.Command {
	var id string
	var location string
	cmd := &cobra.Command{
		Use:     "download",
		Short:   "Download a backup archive",
		Long:    "Download a backup's JSON archive. To see the list of backups, use 'resale backups list'",
		Example: "resale backups download --id <backup_id> --location backup.json",
		Run: func(cmd *cobra.Command, args []string) {
			if location == "" {
				location = id + ".json"
			}

			backupFile, err := os.Create(location)
			if err != nil {
				cmdutil.PrintE("Error creating file: " + err.Error())
				return
			}
			defer func() {
				_ = backupFile.Close()
			}()

			cmdutil.StartLoading("Downloading backup...")
			defer cmdutil.StopLoading()

			archive, err := svc.DownloadBackup(cmd.Context(), id)
			if err != nil {
				cmdutil.PrintE("Error downloading backup: " + err.Error())
				return
			}
			defer func() {
				_ = archive.Close()
			}()

			if _, err = io.Copy(backupFile, archive); err != nil {
				cmdutil.PrintE("Error writing to file: " + err.Error())
				return
			}

			cmdutil.PrintS("Backup downloaded: " + location)
		},
	}

	cmd.Flags().StringVarP(&id, "id", "i", "", "ID of the backup to download")
	cmd.Flags().StringVarP(&location, "location", "l", "", "File path to write the archive to")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
