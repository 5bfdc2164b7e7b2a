package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/staconn/staconn-go/pkg/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newConfigCheckCommand(),
		newConfigDefaultCommand(),
	)

	return cmd
}

func newConfigCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: OK\n", args[0])
			fmt.Fprintf(out, "  SSID:       %s (%s)\n", cfg.WiFi.SSID, cfg.WiFi.AuthThreshold)
			fmt.Fprintf(out, "  Addressing: %s\n", cfg.Addressing.Mode)
			fmt.Fprintf(out, "  Retries:    %d (roaming %s)\n", cfg.Retry.MaxRetries, cfg.Retry.Roaming)
			if cfg.Discovery.Enabled {
				dc, err := cfg.ToDiscovery(nil)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "  Discovery:  %s.%s port %d\n", dc.Instance, dc.Service, dc.Port)
			}
			return nil
		},
	}
}

func newConfigDefaultCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "default",
		Short: "Print the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
