package status

import (
	"context"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"resale/client/internal/api"
	"resale/client/internal/cmdutil"
)

func NewStatusCmd(svc api.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server status",
		Run: func(cmd *cobra.Command, args []string) {
			cmdutil.StartLoading("Working...")
			defer cmdutil.StopLoading()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			st, err := svc.Status(ctx)
			if err != nil {
				cmdutil.PrintE(err.Error())
				return
			}

			tw := table.NewWriter()
			tw.AppendRow(table.Row{"CPUs", fmt.Sprintf("%d", st.CPUCount)})
			tw.AppendRow(table.Row{"Memory used", fmt.Sprintf("%.1f%%", st.MemoryUsedPct)})
			tw.AppendRow(table.Row{"Memory total", fmt.Sprintf("%d MB", st.MemoryTotal/1024/1024)})
			tw.AppendRow(table.Row{"Uptime", (time.Duration(st.UptimeSeconds) * time.Second).String()})
			tw.AppendRow(table.Row{"Server time", st.Time})
			cmdutil.Print("")
			cmdutil.Print(tw.Render())
		},
	}
}
