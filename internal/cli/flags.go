package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/studiowebux/diffreq/internal/config"
	"github.com/studiowebux/diffreq/internal/logging"
)

// GlobalFlags are accepted by every command of both binaries. A flag that is
// set on the command line wins over the environment and the env file.
type GlobalFlags struct {
	EnvFile   string
	Config    string
	LogLevel  string
	LogFormat string
	Color     string
	Timeout   time.Duration
	CAFile    string
	CertFile  string
	KeyFile   string
	Insecure  bool
}

// Register adds the flags to cmd as persistent flags
func (f *GlobalFlags) Register(cmd *cobra.Command, defaultConfig string) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&f.EnvFile, "env-file", "", "Load environment variables from file (default .env when present)")
	flags.StringVarP(&f.Config, "config", "c", "", "Config file (default "+defaultConfig+", env "+config.EnvConfig+")")
	flags.StringVar(&f.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&f.LogFormat, "log-format", "", "Log format: text or json")
	flags.StringVar(&f.Color, "color", "", "Color output: auto, always or never")
	flags.DurationVar(&f.Timeout, "timeout", 0, "Request timeout (default 30s)")
	flags.StringVar(&f.CAFile, "ca-file", "", "PEM bundle used to verify servers")
	flags.StringVar(&f.CertFile, "cert", "", "Client certificate for mTLS")
	flags.StringVar(&f.KeyFile, "key", "", "Client key for mTLS")
	flags.BoolVar(&f.Insecure, "insecure", false, "Skip TLS certificate verification")
}

// Setup resolves settings for cmd, applying the flags that were set
func (f *GlobalFlags) Setup(cmd *cobra.Command, defaultConfig string) (*Common, error) {
	changed := cmd.Flags().Changed
	return Setup(f.EnvFile, defaultConfig, func(cfg *config.Config) error {
		if changed("config") {
			cfg.ConfigPath = f.Config
		}
		if changed("log-level") {
			level, err := logging.ParseLevel(f.LogLevel)
			if err != nil {
				return err
			}
			cfg.LogLevel = level
		}
		if changed("log-format") {
			cfg.LogFormat = logging.ParseFormat(f.LogFormat)
		}
		if changed("color") {
			mode, err := config.ParseColorMode(f.Color)
			if err != nil {
				return err
			}
			cfg.Color = mode
		}
		if changed("timeout") {
			cfg.Timeout = f.Timeout
		}
		if changed("ca-file") {
			cfg.CAFile = f.CAFile
		}
		if changed("cert") {
			cfg.CertFile = f.CertFile
		}
		if changed("key") {
			cfg.KeyFile = f.KeyFile
		}
		if changed("insecure") {
			cfg.InsecureSkipVerify = f.Insecure
		}
		return nil
	})
}

// Interactive returns a terminal prompter when both stdin and stdout are
// terminals and nil otherwise
func Interactive() Prompter {
	if config.IsTerminal(os.Stdin) && config.IsTerminal(os.Stdout) {
		return TerminalPrompter{}
	}
	return nil
}

// DefaultOutput is text on a terminal and the bare body when piped
func DefaultOutput() string {
	if config.IsTerminal(os.Stdout) {
		return OutputText
	}
	return OutputBody
}
