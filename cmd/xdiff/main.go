package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studiowebux/diffreq/internal/cli"
	"github.com/studiowebux/diffreq/internal/config"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "xdiff",
	Short: "Diff the responses of two HTTP requests",
	Long: `xdiff sends the two requests of a profile, filters both responses and
prints a line diff of what is left.

Profiles live in a YAML file (xdiff.yml by default):

  todo:
    req1:
      url: https://staging.example.com/todos/1
    req2:
      url: https://api.example.com/todos/1
    res:
      skip_headers: [date, x-request-id]
      skip_body: [server_time]

Examples:
  xdiff run -p todo                          # Diff the 'todo' profile
  xdiff run -p todo -e a=100                 # Override query param a
  xdiff run -p todo -e %X-Trace=1 -e '#id=7' # Override a header and a body field
  xdiff parse                                # Build a profile interactively
  xdiff parse --url1 URL --url2 URL -p todo  # Build a profile from flags`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Diff the two responses of a profile",
	Long: `Diff the two responses of a profile.

Overrides passed with -e apply to both requests:
  key=value    query parameter
  %key=value   header
  #key=value   top-level body field (quote it in the shell)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		common, err := globalFlags.Setup(cmd, config.DefaultDiffConfig)
		if err != nil {
			return err
		}

		ctx, cancel := cli.WithInterrupt(context.Background())
		defer cancel()

		return cli.RunDiff(ctx, cli.DiffOptions{
			Common:    common,
			Profile:   flagProfile,
			ExtraArgs: flagExtraArgs,
		}, os.Stdout)
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Generate a diff profile from two URLs",
	Long: `Generate a diff profile from two URLs and print it as YAML.

Missing values are prompted for on a terminal. Without --skip-header the
first URL is requested once so its response headers can be picked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		common, err := globalFlags.Setup(cmd, config.DefaultDiffConfig)
		if err != nil {
			return err
		}

		ctx, cancel := cli.WithInterrupt(context.Background())
		defer cancel()

		return cli.ParseDiff(ctx, cli.ParseDiffOptions{
			Common:      common,
			URL1:        flagURL1,
			URL2:        flagURL2,
			Profile:     flagProfile,
			SkipHeaders: flagSkipHeaders,
			Copy:        flagCopy,
			Prompter:    cli.Interactive(),
		}, os.Stdout)
	},
}

var globalFlags cli.GlobalFlags

// Flags for run/parse commands
var (
	flagProfile     string
	flagExtraArgs   []string
	flagURL1        string
	flagURL2        string
	flagSkipHeaders []string
	flagCopy        bool
)

func init() {
	globalFlags.Register(rootCmd, config.DefaultDiffConfig)

	runCmd.Flags().StringVarP(&flagProfile, "profile", "p", "", "Profile to diff")
	runCmd.Flags().StringArrayVarP(&flagExtraArgs, "extra-args", "e", []string{}, "Override (key=value, %header=value, #body=value), can be repeated")

	parseCmd.Flags().StringVarP(&flagProfile, "profile", "p", "", "Name of the generated profile")
	parseCmd.Flags().StringVar(&flagURL1, "url1", "", "First URL")
	parseCmd.Flags().StringVar(&flagURL2, "url2", "", "Second URL")
	parseCmd.Flags().StringArrayVar(&flagSkipHeaders, "skip-header", []string{}, "Response header to skip, can be repeated")
	parseCmd.Flags().BoolVar(&flagCopy, "copy", false, "Copy the generated profile to the clipboard")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(parseCmd)
}
