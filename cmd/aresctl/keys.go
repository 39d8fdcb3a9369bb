package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2beens/aresprotocol/internal/vault"
	"github.com/2beens/aresprotocol/pkg"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Print a new base64 vault key (use it as ARES_VAULT_MASTER_KEY)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := vault.NewKey()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), vault.EncodeKey(key))
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the bcrypt hash of a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "" {
			return errors.New("empty password")
		}
		hash, err := pkg.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var cipherKey string

func readKey() ([]byte, error) {
	encoded := cipherKey
	if encoded == "" {
		encoded = os.Getenv("ARES_VAULT_MASTER_KEY")
	}
	if encoded == "" {
		return nil, errors.New("no key, use --key or ARES_VAULT_MASTER_KEY")
	}
	return vault.DecodeKey(encoded)
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt stdin into a vault envelope",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := readKey()
		if err != nil {
			return err
		}
		plaintext, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		envelope, err := vault.Encrypt(key, plaintext)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), envelope)
		return nil
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt a vault envelope read from stdin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := readKey()
		if err != nil {
			return err
		}
		envelope, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		plaintext, err := vault.Decrypt(key, strings.TrimSpace(string(envelope)))
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(plaintext)
		return err
	},
}

func init() {
	encryptCmd.Flags().StringVar(&cipherKey, "key", "", "base64 vault key, ARES_VAULT_MASTER_KEY when empty")
	decryptCmd.Flags().StringVar(&cipherKey, "key", "", "base64 vault key, ARES_VAULT_MASTER_KEY when empty")
}
