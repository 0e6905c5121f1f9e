package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/jonathan/cv-builder/internal/config"
	"github.com/spf13/cobra"
)

var hashKeyCmd = &cobra.Command{
	Use:   "hash-key",
	Short: "Hash an access key for CV_ACCESS_KEY_HASH",
	Long:  "Reads an access key from stdin and prints its bcrypt hash. Set the hash as CV_ACCESS_KEY_HASH to require the key (X-Access-Key header) when creating sessions over HTTP.",
	Args:  cobra.NoArgs,
	RunE:  runHashKey,
}

func init() {
	rootCmd.AddCommand(hashKeyCmd)
}

func runHashKey(cmd *cobra.Command, _ []string) error {
	key, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && key == "" {
		return fmt.Errorf("failed to read access key from stdin: %w", err)
	}
	key = strings.TrimRight(key, "\r\n")

	access, err := config.NewAccessConfig()
	if err != nil {
		return err
	}

	hash, err := access.HashKey(key)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
