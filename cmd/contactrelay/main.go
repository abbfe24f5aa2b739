// Command contactrelay runs the IoT X contact form relay and its utilities.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iotx/contactrelay/pkg/config"
)

var envFiles []string

var rootCmd = &cobra.Command{
	Use:   "contactrelay",
	Short: "IoT X contact form relay",
	Long: `contactrelay accepts contact form submissions over HTTP and forwards
them to the IoT X inbox by email.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if len(envFiles) == 0 {
			return nil
		}
		return config.LoadEnvFiles(envFiles...)
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv file(s) to load before reading the environment")
	rootCmd.AddCommand(serveCmd, sealConfigCmd, openConfigCmd, testEmailCmd, submitCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
