package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"signer-core/internal/client"

	"github.com/spf13/cobra"
)

var (
	deviceAddr string
	timeout    time.Duration
)

// rootCmd is the host tool talking to a running signer-device.
var rootCmd = &cobra.Command{
	Use:   "signer-cli",
	Short: "Host tool for the signer device",
	Long: `signer-cli drives a signer-device over its link: it reads the public key,
submits transactions for review and signing, opens the device menu and
creates encrypted mnemonic keystores for the device to load.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&deviceAddr, "addr", "127.0.0.1:9999", "device link address")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per-command timeout, 0 waits for the holder")
}

// withDevice opens the link for the duration of fn.
func withDevice(ctx context.Context, fn func(c *client.Client) error) error {
	c, err := client.Dial(ctx, deviceAddr, timeout)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}
