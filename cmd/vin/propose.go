package main

import (
	"github.com/spf13/cobra"

	"vinkit/pkg/vin"
)

type proposal struct {
	Input    string `yaml:"input"`
	VIN      string `yaml:"vin"`
	Validity string `yaml:"validity"`
}

func newProposeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "propose [input]...",
		Short: "Correct inputs into checksum-valid VINs",
		Long:  `Proposes a checksum-valid VIN for each argument. With no arguments the fallback template is proposed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{""}
			}
			out := make([]proposal, 0, len(args))
			rows := make([]row, 0, len(args))
			for _, arg := range args {
				p := vin.Propose(arg)
				out = append(out, proposal{Input: arg, VIN: p.String(), Validity: p.Validity().String()})
				rows = append(rows, row{p.String()})
			}
			return opts.write(out, rows)
		},
	}
}
