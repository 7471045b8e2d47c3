package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	output string
	out    io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{out: out}

	root := &cobra.Command{
		Use:           "vin",
		Short:         "Validate, correct and decode VINs",
		Long:          `Validates ISO 3779 Vehicle Identification Numbers, proposes corrections and resolves manufacturer names.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case outputText, outputYAML:
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want %s or %s)", opts.output, outputText, outputYAML)
			}
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "output format: text or yaml")

	root.AddCommand(
		newCheckCmd(opts),
		newProposeCmd(opts),
		newDecodeCmd(opts),
		newSeedCmd(opts),
	)
	return root
}
