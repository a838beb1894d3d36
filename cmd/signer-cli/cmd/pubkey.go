package cmd

import (
	"encoding/hex"
	"fmt"

	"signer-core/internal/client"
	"signer-core/pkg/address"
	"signer-core/pkg/bip32"

	"github.com/spf13/cobra"
)

var pubkeyCmd = &cobra.Command{
	Use:   "pubkey",
	Short: "Read the device public key",
	RunE: func(cmd *cobra.Command, args []string) error {
		network, _ := cmd.Flags().GetString("network")
		params, err := bip32.NetworkParams(network)
		if err != nil {
			return err
		}

		return withDevice(cmd.Context(), func(c *client.Client) error {
			pub, err := c.GetPubkey()
			if err != nil {
				return err
			}
			fmt.Printf("PubKey: %s\n", hex.EncodeToString(pub))

			btcAddr, err := address.NewBTCGenerator(params).PubKeyToAddress(pub)
			if err != nil {
				return err
			}
			ethAddr, err := address.NewETHGenerator().PubKeyToAddress(pub)
			if err != nil {
				return err
			}
			fmt.Printf("BTC:    %s\n", btcAddr)
			fmt.Printf("ETH:    %s\n", ethAddr)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(pubkeyCmd)
	pubkeyCmd.Flags().String("network", "mainnet", "BTC address network (mainnet, testnet, regtest)")
}
