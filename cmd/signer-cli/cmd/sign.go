package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"math/big"

	"signer-core/internal/client"
	"signer-core/internal/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Submit a transaction for review and signing",
	Long: `Builds a Sign payload from the flags and sends it to the device. The
command waits until the holder approves or rejects it on the device.

The amount is either --value in base units or --amount with --decimals,
e.g. --amount 0.015 --decimals 8 sends 1500000.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		coin, _ := cmd.Flags().GetString("coin")
		to, _ := cmd.Flags().GetString("to")
		memo, _ := cmd.Flags().GetString("memo")
		amount, _ := cmd.Flags().GetString("amount")
		decimals, _ := cmd.Flags().GetInt32("decimals")
		value, _ := cmd.Flags().GetUint64("value")

		// 1. Amount in base units
		if amount != "" {
			if cmd.Flags().Changed("value") {
				return errors.New("use either --value or --amount")
			}
			var err error
			if value, err = toBaseUnits(amount, decimals); err != nil {
				return err
			}
		}

		// 2. Destination
		if !common.IsHexAddress(to) {
			return fmt.Errorf("--to %q is not a 20 byte hex address", to)
		}

		tx := model.Transaction{
			Coin:  []byte(coin),
			Value: value,
			To:    common.HexToAddress(to),
			Memo:  []byte(memo),
		}

		// 3. Review on the device
		fmt.Println("Waiting for review on the device...")
		return withDevice(cmd.Context(), func(c *client.Client) error {
			sig, signed, err := c.Sign(tx)
			if err != nil {
				return err
			}
			if !signed {
				fmt.Println("Rejected by the holder.")
				return nil
			}
			fmt.Printf("Signature: %s\n", hex.EncodeToString(sig))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(signCmd)
	signCmd.Flags().String("coin", "", "coin ticker, at most 10 characters are displayable")
	signCmd.Flags().Uint64("value", 0, "amount in base units")
	signCmd.Flags().String("amount", "", "decimal amount, scaled by --decimals")
	signCmd.Flags().Int32("decimals", 0, "decimals of --amount")
	signCmd.Flags().String("to", "", "destination, 20 byte hex address")
	signCmd.Flags().String("memo", "", "free text memo")
	_ = signCmd.MarkFlagRequired("coin")
	_ = signCmd.MarkFlagRequired("to")
}

var maxValue = decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)

// toBaseUnits scales a decimal amount to an integer number of base units.
func toBaseUnits(amount string, decimals int32) (uint64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if decimals < 0 {
		return 0, fmt.Errorf("invalid decimals %d", decimals)
	}

	units := d.Shift(decimals)
	switch {
	case units.IsNegative():
		return 0, fmt.Errorf("amount %s is negative", amount)
	case !units.Equal(units.Truncate(0)):
		return 0, fmt.Errorf("amount %s has more than %d decimals", amount, decimals)
	case units.GreaterThan(maxValue):
		return 0, fmt.Errorf("amount %s overflows 64 bits", amount)
	}
	return units.BigInt().Uint64(), nil
}
