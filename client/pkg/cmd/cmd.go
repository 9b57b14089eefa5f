package cmd

import (
	"github.com/spf13/cobra"

	"resale/client/internal/api"
	"resale/client/internal/auth"
	"resale/client/internal/config"
	backupscmd "resale/client/pkg/cmd/backups"
	configcmd "resale/client/pkg/cmd/config"
	"resale/client/pkg/cmd/login"
	"resale/client/pkg/cmd/status"
)

func New() (*cobra.Command, error) {
	cfg, err := config.Parse()
	if err != nil {
		return nil, err
	}

	// no stored token yet is fine: login is the command that creates one
	token, _ := auth.Get()
	svc := api.NewService(api.NewClient(cfg.Host, token))

	cmd := &cobra.Command{
		Use:   "resale",
		Short: "resale - trade-in storefront admin tool",
	}

	cmd.AddCommand(login.NewLoginCmd(svc, cfg))
	cmd.AddCommand(backupscmd.NewBackupsCmd(svc))
	cmd.AddCommand(configcmd.NewConfigCmd(svc))
	cmd.AddCommand(status.NewStatusCmd(svc))
	return cmd, nil
}
