package main

import (
	"github.com/spf13/cobra"

	"vinkit/internal/decoder"
	"vinkit/internal/wmi"
	"vinkit/internal/wmi/catalog"
)

type decodeReport struct {
	VIN          string `yaml:"vin"`
	Validity     string `yaml:"validity"`
	WMI          string `yaml:"wmi,omitempty"`
	VDS          string `yaml:"vds,omitempty"`
	VIS          string `yaml:"vis,omitempty"`
	CheckDigit   string `yaml:"check_digit,omitempty"`
	Locale       string `yaml:"locale"`
	Region       string `yaml:"region,omitempty"`
	Country      string `yaml:"country,omitempty"`
	Manufacturer string `yaml:"manufacturer,omitempty"`
	Proposal     string `yaml:"proposal,omitempty"`
}

func newDecodeCmd(opts *options) *cobra.Command {
	var locale string
	cmd := &cobra.Command{
		Use:   "decode <vin>",
		Short: "Show the sections and manufacturer names of a VIN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.LoadEmbedded()
			if err != nil {
				return err
			}
			describer, err := wmi.NewDescriber(cat)
			if err != nil {
				return err
			}
			svc := decoder.New(decoder.WithDescriber(describer))

			report, err := svc.Decode(cmd.Context(), args[0], cat.Match(locale))
			if err != nil {
				return err
			}
			out := toDecodeReport(report)
			return opts.write(out, decodeRows(out))
		},
	}
	cmd.Flags().StringVarP(&locale, "locale", "l", catalog.BaseLocale, "locale for manufacturer names (BCP 47)")
	return cmd
}

func toDecodeReport(r *decoder.Report) decodeReport {
	out := decodeReport{
		VIN:          r.VIN.String(),
		Validity:     r.Validity.String(),
		WMI:          r.Segments.WMI,
		VDS:          r.Segments.VDS,
		VIS:          r.Segments.VIS,
		CheckDigit:   r.CheckDigit,
		Locale:       r.Locale,
		Region:       r.Description.Region,
		Country:      r.Description.Country,
		Manufacturer: r.Description.Manufacturer,
	}
	if r.Proposal != nil {
		out.Proposal = r.Proposal.String()
	}
	return out
}

func decodeRows(r decodeReport) []row {
	rows := []row{
		{"vin", r.VIN},
		{"validity", r.Validity},
	}
	add := func(label, value string) {
		if value != "" {
			rows = append(rows, row{label, value})
		}
	}
	add("wmi", r.WMI)
	add("vds", r.VDS)
	add("vis", r.VIS)
	add("check digit", r.CheckDigit)
	add("locale", r.Locale)
	add("region", r.Region)
	add("country", r.Country)
	add("manufacturer", r.Manufacturer)
	add("proposal", r.Proposal)
	return rows
}
