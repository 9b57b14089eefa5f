package config

import (
	"github.com/spf13/cobra"

	"resale/client/internal/api"
	"resale/client/pkg/cmd/config/get"
	"resale/client/pkg/cmd/config/set"
)

func NewConfigCmd(svc api.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View and change the backup configuration",
	}

	cmd.AddCommand(get.NewGetConfigCmd(svc))
	cmd.AddCommand(set.NewSetConfigCmd(svc))
	return cmd
}
