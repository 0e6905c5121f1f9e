package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/variant"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a document or variant definition",
	Long:  "Checks a document snapshot against the document schema and its variant, or a variant definition file against the variant schema and its semantic rules.",
	RunE:  runValidate,
}

var (
	validateDocFile     string
	validateVariantFile string
)

func init() {
	validateCmd.Flags().StringVarP(&validateDocFile, "doc", "d", "", "Path to document JSON")
	validateCmd.Flags().StringVar(&validateVariantFile, "variant-file", "", "Path to variant definition (JSON or YAML)")

	validateCmd.MarkFlagsMutuallyExclusive("doc", "variant-file")
	validateCmd.MarkFlagsOneRequired("doc", "variant-file")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	subject := "document"
	var err error
	if validateVariantFile != "" {
		subject = "variant"
		_, err = variant.Load(validateVariantFile)
	} else {
		_, _, err = loadDocument(validateDocFile)
	}

	problems := problemsOf(err)
	observability.NewPrinter(cmd.OutOrStdout()).PrintProblems(subject, problems)
	if len(problems) > 0 {
		return fmt.Errorf("%s is invalid: %d problems", subject, len(problems))
	}
	return nil
}

// problemsOf flattens a validation failure into one line per problem.
func problemsOf(err error) []string {
	if err == nil {
		return nil
	}

	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		out := make([]string, 0, len(schemaErr.Errors))
		for _, fe := range schemaErr.Errors {
			out = append(out, fe.Field+": "+fe.Message)
		}
		return out
	}

	var variantErr *variant.ValidationError
	if errors.As(err, &variantErr) {
		return variantErr.Problems
	}

	return []string{err.Error()}
}
