package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "db-verify",
	Short: "A cross-database data validation tool",
	Long: `
  ____  ____   __     _______ ____  ___ _______   __
 |  _ \| __ )  \ \   / / ____|  _ \|_ _|  ___\ \ / /
 | | | |  _ \   \ \ / /|  _| | |_) || || |_   \ V /
 | |_| | |_) |   \ V / | |___|  _ < | || |       | |
 |____/|____/     \_/  |_____|_| \_\___|_|       |_|

DB VERIFY 🔍 - Tolerance-Aware Database Comparison
`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./db-verify.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Executable directory first, current directory second.
		if ex, err := os.Executable(); err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}
		viper.AddConfigPath(".")

		viper.SetConfigName("db-verify")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
