package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/landingkit/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize landingkit configuration with an interactive wizard",
	Long:  `Runs an interactive wizard that writes a .landingkit.yml file and a starter section file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
