package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Sriram-PR/seo-audit/pkg/config"
)

func newValidateCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doValidate(configFile, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&configFile, "config", defaultConfigFile, "Path to config file")
	return cmd
}

// doValidate loads and validates configPath, printing warnings and the
// effective settings to stdout.
func doValidate(configPath string, stdout io.Writer) error {
	appCfg, err := config.Load(configPath, true)
	if err != nil {
		return err
	}
	warnings, err := appCfg.Validate()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(stdout, "WARN: %s\n", w)
	}

	fmt.Fprintf(stdout, "user_agent: %s\n", appCfg.UserAgent)
	fmt.Fprintf(stdout, "batch_size: %d\n", appCfg.BatchSize)
	fmt.Fprintf(stdout, "max_retries: %d (%v..%v)\n", appCfg.MaxRetries, appCfg.InitialRetryDelay, appCfg.MaxRetryDelay)
	fmt.Fprintf(stdout, "output_dir: %s\n", appCfg.OutputDir)
	if appCfg.StateDir == "" {
		fmt.Fprintln(stdout, "state_dir: (in memory)")
	} else {
		fmt.Fprintf(stdout, "state_dir: %s\n", appCfg.StateDir)
	}
	fmt.Fprintln(stdout, "\nConfiguration valid.")
	return nil
}
