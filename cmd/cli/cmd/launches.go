package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"launchplane/pkg/api"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var launchesCmd = &cobra.Command{
	Use:   "launches",
	Short: "List, schedule and abort launches",
}

var launchesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List launches by ascending flight number",
	Long: `List stored launches ordered by flight number.

Example:
  launchctl launches list
  launchctl launches list --page 2 --limit 20`,
	Run: func(cmd *cobra.Command, args []string) {
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")

		client := NewLaunchClient(viper.GetString("url"))
		launches, err := client.ListLaunches(page, limit)
		if err != nil {
			printAPIError(cmd, "List failed", err)
			return
		}

		if len(launches) == 0 {
			cmd.Println("No launches found.")
			return
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "FLIGHT\tMISSION\tROCKET\tDATE\tTARGET\tSTATUS\tCUSTOMERS")
		for _, l := range launches {
			target := l.Target
			if target == "" {
				target = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				l.FlightNumber,
				l.Mission,
				l.Rocket,
				l.LaunchDate.Format("2006-01-02"),
				target,
				launchStatus(l),
				strings.Join(l.Customers, ", "),
			)
		}
		w.Flush()
	},
}

var launchesScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule a new launch toward a habitable planet",
	Long: `Schedule a new launch. The target must be one of the planets listed by
'launchctl planets list'.

Example:
  launchctl launches schedule --mission "Kepler Exploration X" --rocket "Explorer IS1" --target "Kepler-442 b" --date 2030-12-27`,
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()
		mission, _ := flags.GetString("mission")
		rocket, _ := flags.GetString("rocket")
		target, _ := flags.GetString("target")
		date, _ := flags.GetString("date")

		required := []struct{ flag, value string }{
			{"mission", mission},
			{"rocket", rocket},
			{"target", target},
			{"date", date},
		}
		for _, r := range required {
			if r.value == "" {
				cmd.Printf("Error: --%s is required\n", r.flag)
				return
			}
		}

		client := NewLaunchClient(viper.GetString("url"))
		launch, err := client.ScheduleLaunch(api.ScheduleLaunchRequest{
			Mission:    mission,
			Rocket:     rocket,
			Target:     target,
			LaunchDate: date,
		})
		if err != nil {
			printAPIError(cmd, "Schedule failed", err)
			return
		}

		cmd.Printf("%s✓%s Launch scheduled\n", colorGreen, colorReset)
		cmd.Printf("%sFlight:%s    %d\n", colorDim, colorReset, launch.FlightNumber)
		cmd.Printf("%sMission:%s   %s\n", colorDim, colorReset, launch.Mission)
		cmd.Printf("%sTarget:%s    %s\n", colorDim, colorReset, launch.Target)
		cmd.Printf("%sDate:%s      %s\n", colorDim, colorReset, launch.LaunchDate.Format("Mon, 02 Jan 2006"))
	},
}

var launchesAbortCmd = &cobra.Command{
	Use:   "abort [flight_number]",
	Short: "Abort a launch",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flightNumber, err := strconv.Atoi(args[0])
		if err != nil {
			cmd.Printf("Error: invalid flight number %q\n", args[0])
			return
		}

		client := NewLaunchClient(viper.GetString("url"))
		result, err := client.AbortLaunch(flightNumber)
		if err != nil {
			printAPIError(cmd, "Abort failed", err)
			return
		}

		if result.OK {
			cmd.Printf("%s✓%s Launch %d aborted\n", colorGreen, colorReset, flightNumber)
		} else {
			cmd.Printf("%s•%s Launch %d was already aborted\n", colorYellow, colorReset, flightNumber)
		}
	},
}

var launchesImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Re-import the historical launch record from the SpaceX API",
	Run: func(cmd *cobra.Command, args []string) {
		client := NewLaunchClient(viper.GetString("url"))
		result, err := client.Import()
		if err != nil {
			printAPIError(cmd, "Import failed", err)
			return
		}
		cmd.Printf("%s✓%s Imported %d launches\n", colorGreen, colorReset, result.Imported)
	},
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func launchStatus(l api.Launch) string {
	switch {
	case l.Upcoming:
		return colorCyan + "UPCOMING" + colorReset
	case l.Success:
		return colorGreen + "SUCCESS" + colorReset
	default:
		return colorRed + "FAILED" + colorReset
	}
}

func printAPIError(cmd *cobra.Command, prefix string, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		cmd.Printf("%s (%d): %s\n", prefix, apiErr.StatusCode, apiErr.Message)
		return
	}
	cmd.Printf("%s: %v\n", prefix, err)
}

func init() {
	launchesListCmd.Flags().Int("page", 0, "Page number, starting at 1")
	launchesListCmd.Flags().Int("limit", 0, "Launches per page (server default when 0)")

	launchesScheduleCmd.Flags().String("mission", "", "Mission name (required)")
	launchesScheduleCmd.Flags().String("rocket", "", "Rocket type (required)")
	launchesScheduleCmd.Flags().String("target", "", "Destination planet, e.g. \"Kepler-442 b\" (required)")
	launchesScheduleCmd.Flags().String("date", "", "Launch date, YYYY-MM-DD or RFC 3339 (required)")

	launchesCmd.AddCommand(launchesListCmd, launchesScheduleCmd, launchesAbortCmd, launchesImportCmd)
	rootCmd.AddCommand(launchesCmd)
}
