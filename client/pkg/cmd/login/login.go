package login

import (
	"context"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"resale/client/internal/api"
	"resale/client/internal/auth"
	"resale/client/internal/cmdutil"
	"resale/client/internal/config"
)

func NewLoginCmd(svc api.Service, cfg config.Config) *cobra.Command {
	var host string
	var email string
	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Log in to a resale server",
		Long:    "Authenticate against the resale server with your staff credentials. The session token is stored in the system keyring, subsequent commands use it automatically.",
		Example: "resale login --host https://admin.example.com --email you@example.com",
		Run: func(cmd *cobra.Command, args []string) {
			if host == "" {
				host = cfg.Host
			}
			if host == "" {
				cmdutil.PrintE("No host configured. Pass --host or create a .resale.yml")
				return
			}

			passwordPrompt := promptui.Prompt{
				Label: "Password",
				Mask:  '*',
			}
			password, err := passwordPrompt.Run()
			if err != nil {
				cmdutil.PrintE(err.Error())
				return
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			// the injected service may carry a stale token; build a fresh
			// client against the chosen host
			loginSvc := api.NewService(api.NewClient(host, ""))
			token, err := loginSvc.Login(ctx, email, password)
			if err != nil {
				cmdutil.PrintE("Login failed: " + err.Error())
				return
			}

			if err := auth.Save(token); err != nil {
				cmdutil.PrintE("Failed to store session token: " + err.Error())
				return
			}
			if err := config.Write(config.Config{Host: host}); err != nil {
				cmdutil.PrintE("Failed to save config: " + err.Error())
				return
			}

			cmdutil.PrintS("Logged in to " + host)
		},
	}

	cmd.Flags().StringVarP(&host, "host", "H", "", "Base URL of the resale server")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Staff account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
