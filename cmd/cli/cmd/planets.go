package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var planetsCmd = &cobra.Command{
	Use:   "planets",
	Short: "Inspect the habitable planet catalog",
}

var planetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List habitable planets that launches may target",
	Run: func(cmd *cobra.Command, args []string) {
		client := NewLaunchClient(viper.GetString("url"))
		planets, err := client.ListPlanets()
		if err != nil {
			printAPIError(cmd, "List failed", err)
			return
		}

		if len(planets) == 0 {
			cmd.Println("No habitable planets loaded.")
			return
		}
		for _, p := range planets {
			cmd.Println(p.KeplerName)
		}
		cmd.Printf("%s%d habitable planets%s\n", colorDim, len(planets), colorReset)
	},
}

func init() {
	planetsCmd.AddCommand(planetsListCmd)
	rootCmd.AddCommand(planetsCmd)
}
