package list

import (
	"context"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"resale/client/internal/api"
	"resale/client/internal/cmdutil"
)

func NewListBackupsCmd(svc api.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List backups",
		Long:  "List all backups on the server, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			cmdutil.StartLoading("Working...")
			defer cmdutil.StopLoading()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			backups, err := svc.ListBackups(ctx)
			if err != nil {
				cmdutil.PrintE(err.Error())
				return
			}

			header := table.Row{"ID", "Type", "Collections", "Size", "Created By", "Time Created"}
			tw := table.NewWriter()
			tw.AppendHeader(header)
			for _, next := range backups {
				documents := 0
				for _, c := range next.Collections {
					documents += c.Count
				}
				row := table.Row{
					next.ID.String(),
					next.Type,
					fmt.Sprintf("%d (%d docs)", len(next.Collections), documents),
					next.SizeFormatted,
					next.CreatedBy,
					next.CreatedAt.Format("02-01-2006 15:04"),
				}
				tw.AppendRow(row)
				tw.AppendSeparator()
			}
			cmdutil.Print("")
			cmdutil.Print(tw.Render())
		},
	}
}
