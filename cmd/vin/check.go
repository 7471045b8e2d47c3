package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vinkit/pkg/vin"
)

type checkResult struct {
	VIN        string `yaml:"vin"`
	Validity   string `yaml:"validity"`
	CheckDigit string `yaml:"check_digit,omitempty"`
}

func newCheckCmd(opts *options) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "check <vin>...",
		Short: "Classify VINs as invalid, valid or valid_with_checksum",
		Long: `Classifies each argument. Exits non-zero when any argument is invalid,
or with --strict when any argument lacks a correct check digit.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]checkResult, 0, len(args))
			rows := make([]row, 0, len(args))
			failed := 0
			for _, arg := range args {
				v := vin.New(arg)
				validity := v.Validity()
				res := checkResult{VIN: arg, Validity: validity.String()}
				if digit, ok := vin.CheckDigit(arg); ok {
					res.CheckDigit = string(digit)
				}
				if !validity.IsSyntacticallyValid() || (strict && !validity.HasValidChecksum()) {
					failed++
				}
				results = append(results, res)
				rows = append(rows, row{res.VIN, res.Validity})
			}
			if err := opts.write(results, rows); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d VINs failed the check", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "require a correct check digit")
	return cmd
}
