package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"signer-core/pkg/bip39"
	"signer-core/pkg/keystore"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an encrypted mnemonic keystore for the device",
	Long: `Generates a new BIP-39 mnemonic, encrypts it with a password and writes it
as a keystore file. Point wallet.keystore_path of the device at it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, _ := cmd.Flags().GetString("output")
		words, _ := cmd.Flags().GetInt("words")
		show, _ := cmd.Flags().GetBool("show")

		if _, err := os.Stat(outputFile); err == nil {
			return fmt.Errorf("%s already exists", outputFile)
		}
		bitSize := map[int]int{12: 128, 24: 256}[words]
		if bitSize == 0 {
			return fmt.Errorf("--words must be 12 or 24")
		}

		// 1. Password
		password, err := readPassword("Password: ")
		if err != nil {
			return err
		}
		defer clear(password)
		confirm, err := readPassword("Confirm password: ")
		if err != nil {
			return err
		}
		defer clear(confirm)
		if !bytes.Equal(password, confirm) {
			return errors.New("passwords do not match")
		}
		if len(password) < 6 {
			return errors.New("password must be at least 6 characters")
		}

		// 2. Mnemonic
		mnemonic, err := bip39.NewMnemonicService().GenerateMnemonic(bitSize)
		if err != nil {
			return err
		}

		// 3. Encrypt and save
		encryptedKey, err := keystore.EncryptMnemonic(mnemonic, password, keystore.StandardScryptN)
		if err != nil {
			return err
		}
		if err := encryptedKey.SaveToFile(outputFile); err != nil {
			return err
		}

		fmt.Printf("Keystore written to %s (id %s)\n", outputFile, encryptedKey.Id)
		if show {
			fmt.Println("Mnemonic, write it down and keep it offline:")
			fmt.Println(mnemonic)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringP("output", "o", "wallet.json", "keystore file to create")
	initCmd.Flags().Int("words", 12, "mnemonic length, 12 or 24")
	initCmd.Flags().Bool("show", false, "print the mnemonic for backup")
}

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return pw, nil
}
