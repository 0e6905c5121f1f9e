package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the available variants",
	RunE:  runVariants,
}

func init() {
	rootCmd.AddCommand(variantsCmd)
}

func runVariants(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, name := range registry.Names() {
		v, err := registry.Get(name)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(out, "%s (%s)\n", v.Name, v.Label)
		if v.Description != "" {
			_, _ = fmt.Fprintf(out, "  %s\n", v.Description)
		}
		_, _ = fmt.Fprintf(out, "  order: %s\n", strings.Join(v.Order(), ", "))
		for _, b := range v.TextBlocks {
			_, _ = fmt.Fprintf(out, "  - %-24s %s (text)\n", b.Key, b.Title)
		}
		for _, s := range v.Sections {
			_, _ = fmt.Fprintf(out, "  - %-24s %s [%s]\n", s.Key, s.Title, strings.Join(s.Fields, ", "))
		}
	}
	return nil
}
