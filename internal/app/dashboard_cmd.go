package app

import (
	"github.com/per2jensen/clonepulse/pkg/dashboard"
	"github.com/spf13/cobra"
)

func newDashboardCmd(deps *Dependencies) *cobra.Command {
	var params dashboard.Params

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Render the weekly clone dashboard PNG",
		Long: "Aggregate the record store into complete Monday-Sunday weeks and render " +
			"the weekly clone chart, including annotations and rolling averages.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.DashboardService.Render(cmd.Context(), params)
		},
	}

	cmd.Flags().StringVar(&params.Start, "start", "", "start reporting date (YYYY-MM-DD), normalized to its week's Monday")
	cmd.Flags().IntVar(&params.Weeks, "weeks", dashboard.DefaultWeeks, "number of weeks to display")
	cmd.Flags().IntVar(&params.Year, "year", 0, "calendar year to plot (YYYY); overrides --start and --weeks")

	return cmd
}
