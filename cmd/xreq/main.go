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
	Use:   "xreq",
	Short: "Send HTTP requests from named profiles",
	Long: `xreq sends the request of a profile and prints the response.

Profiles live in a YAML file (xreq.yml by default):

  todo:
    url: https://api.example.com/todos/1
    params:
      a: 1
    headers:
      Accept: application/json

Examples:
  xreq run -p todo                     # Send the 'todo' profile
  xreq run -p todo -e a=2 -e %X-Id=7   # Override a query param and a header
  xreq run -p todo --full              # Show request line and headers
  xreq run -p todo -q 'items[0].id'    # JMESPath query on the body
  xreq run -p todo -q '$(jq .id)'      # Pipe the body through a command
  xreq parse --url URL -p todo         # Build a profile from a URL`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Send the request of a profile",
	Long: `Send the request of a profile.

Overrides passed with -e:
  key=value    query parameter
  %key=value   header
  #key=value   top-level body field (quote it in the shell)

A response status outside 2xx/3xx exits with status 1.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		common, err := globalFlags.Setup(cmd, config.DefaultRequestConfig)
		if err != nil {
			return err
		}

		output := flagOutput
		if output == "" {
			output = cli.DefaultOutput()
		}

		ctx, cancel := cli.WithInterrupt(context.Background())
		defer cancel()

		return cli.RunRequest(ctx, cli.RequestOptions{
			Common:    common,
			Profile:   flagProfile,
			ExtraArgs: flagExtraArgs,
			Output:    output,
			Full:      flagFull,
			Filter:    flagFilter,
			Query:     flagQuery,
		}, os.Stdout)
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Generate a request profile from a URL",
	Long: `Generate a request profile from a URL and print it as YAML.

Query parameters become params. Missing values are prompted for on a terminal.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		common, err := globalFlags.Setup(cmd, config.DefaultRequestConfig)
		if err != nil {
			return err
		}

		ctx, cancel := cli.WithInterrupt(context.Background())
		defer cancel()

		return cli.ParseRequest(ctx, cli.ParseRequestOptions{
			Common:   common,
			URL:      flagURL,
			Profile:  flagProfile,
			Copy:     flagCopy,
			Prompter: cli.Interactive(),
		}, os.Stdout)
	},
}

var globalFlags cli.GlobalFlags

// Flags for run/parse commands
var (
	flagProfile   string
	flagExtraArgs []string
	flagOutput    string
	flagFull      bool
	flagFilter    string
	flagQuery     string
	flagURL       string
	flagCopy      bool
)

func init() {
	globalFlags.Register(rootCmd, config.DefaultRequestConfig)

	runCmd.Flags().StringVarP(&flagProfile, "profile", "p", "", "Profile to send")
	runCmd.Flags().StringArrayVarP(&flagExtraArgs, "extra-args", "e", []string{}, "Override (key=value, %header=value, #body=value), can be repeated")
	runCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format (text/body/json/yaml)")
	runCmd.Flags().BoolVarP(&flagFull, "full", "f", false, "Show request line and response headers")
	runCmd.Flags().StringVar(&flagFilter, "filter", "", "JMESPath filter applied to the body")
	runCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query or $(shell command) applied to the body")

	parseCmd.Flags().StringVarP(&flagProfile, "profile", "p", "", "Name of the generated profile")
	parseCmd.Flags().StringVar(&flagURL, "url", "", "URL to turn into a profile")
	parseCmd.Flags().BoolVar(&flagCopy, "copy", false, "Copy the generated profile to the clipboard")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(parseCmd)
}
