package main

import (
	"github.com/spf13/cobra"

	"github.com/staconn/staconn-go/pkg/config"
)

type globalFlags struct {
	configFile string
	ssid       string
	passphrase string
	logLevel   string
	traceFile  string
}

func newRootCommand() *cobra.Command {
	var g globalFlags

	cmd := &cobra.Command{
		Use:           "staconn",
		Short:         "Wi-Fi station connection controller",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configFile, "config", "c", "", "Configuration file path")
	cmd.PersistentFlags().StringVar(&g.ssid, "ssid", "", "Network SSID (overrides config)")
	cmd.PersistentFlags().StringVar(&g.passphrase, "passphrase", "", "Network passphrase (overrides config)")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	cmd.PersistentFlags().StringVar(&g.traceFile, "trace", "", "Write a binary trace to this file (overrides config)")

	cmd.AddCommand(
		newConnectCommand(&g),
		newShellCommand(&g),
		newConfigCommand(),
	)

	return cmd
}

// load reads the configuration file, if any, and applies flag overrides.
func (g *globalFlags) load() (*config.Config, error) {
	cfg := config.Default()
	if g.configFile != "" {
		loaded, err := config.Load(g.configFile)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	if g.ssid != "" {
		cfg.WiFi.SSID = g.ssid
	}
	if g.passphrase != "" {
		cfg.WiFi.Passphrase = g.passphrase
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.traceFile != "" {
		cfg.Log.TraceFile = g.traceFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
