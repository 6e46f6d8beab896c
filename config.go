package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	backendURL string
	bind       string
	port       int
	minCards   int
	maxCards   int
	verbose    bool
}

func (c *Config) validate() error {
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	u, err := url.Parse(c.backendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid backend url: %q", c.backendURL)
	}
	if c.minCards < 0 {
		return fmt.Errorf("min-cards must not be negative: %d", c.minCards)
	}
	if c.maxCards < 1 {
		return fmt.Errorf("max-cards must be at least 1: %d", c.maxCards)
	}
	if c.minCards > c.maxCards {
		return fmt.Errorf("min-cards (%d) must not exceed max-cards (%d)", c.minCards, c.maxCards)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TIMECRAX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "timecrax-web",
		Short:         "Web front-end for the TimeCrax educational history game.",
		Args:          cobra.ExactArgs(0),
		Version:       releaseVersion,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.backendURL, "backend-url", "http://localhost:5139", "base URL of the TimeCrax backend (env: TIMECRAX_BACKEND_URL)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: TIMECRAX_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: TIMECRAX_PORT)")
	fs.IntVar(&cfg.minCards, "min-cards", 0, "minimum saved cards required to submit a theme (env: TIMECRAX_MIN_CARDS)")
	fs.IntVar(&cfg.maxCards, "max-cards", 20, "maximum cards allowed per theme (env: TIMECRAX_MAX_CARDS)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: TIMECRAX_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("timecrax-web v{{.Version}}\n")

	return cmd
}
