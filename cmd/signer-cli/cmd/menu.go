package cmd

import (
	"fmt"

	"signer-core/internal/client"

	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the device menu and wait until the holder leaves it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(cmd.Context(), func(c *client.Client) error {
			exited, err := c.Menu()
			if err != nil {
				return err
			}
			if exited {
				fmt.Println("The holder closed the application.")
			}
			return nil
		})
	},
}

var exitCmd = &cobra.Command{
	Use:   "exit",
	Short: "Stop the device application",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDevice(cmd.Context(), func(c *client.Client) error {
			return c.Exit()
		})
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(exitCmd)
}
