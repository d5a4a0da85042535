package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "launchctl",
	Short: "Launchctl is a command line tool for the launchplane mission control API",
	Long: `launchctl is the command-line interface for launchplane.

launchplane keeps a catalog of habitable exoplanets and a ledger of
spaceflight launches: the full historical record imported from the SpaceX
API plus missions scheduled by users toward a habitable planet.

Common workflows:

  List habitable planets:
    launchctl planets list

  List launches, 20 per page:
    launchctl launches list --page 2 --limit 20

  Schedule a mission:
    launchctl launches schedule --mission "Kepler Exploration X" \
      --rocket "Explorer IS1" --target "Kepler-442 b" --date 2030-12-27

  Abort a launch:
    launchctl launches abort 100

Configuration:
  Set the API endpoint via flag, environment variable or config file:
    LAUNCHPLANE_URL    API endpoint (default: http://localhost:8000)`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".launchctl"
		viper.AddConfigPath(home)
		viper.SetConfigName(".launchctl")
		viper.SetConfigType("yaml")
	}

	// Read environment variables that match "LAUNCHPLANE_VARNAME"
	viper.SetEnvPrefix("LAUNCHPLANE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.launchctl.yaml)")

	rootCmd.PersistentFlags().String("url", "http://localhost:8000", "launchplane controller URL")
	viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
}
