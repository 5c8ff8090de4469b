package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "landingkit",
	Short: "Build single-page marketing sites from a section file",
	Long: `landingkit renders an ordered list of sections (hero banners, feature
grids) into a static single-page site with a fixed navigation bar,
offset-aware smooth scrolling and scroll-triggered card reveals.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".landingkit.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
