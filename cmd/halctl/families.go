package main

import (
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mcuhal/family"
	"mcuhal/x/fmtx"
)

var familiesCmd = &cobra.Command{
	Use:   "families",
	Short: "List supported families, their build tags and known parts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := table(cmd.OutOrStdout())
		fmtx.Fprintf(tw, "TAG\tFAMILY\tVENDOR\tCORE\tPARTS\n")
		for _, d := range family.All() {
			fmtx.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.Tag, d.Name, d.Vendor, d.Core, strings.Join(family.Chips(d.ID), " "))
		}
		return tw.Flush()
	},
}

var chipCmd = &cobra.Command{
	Use:   "chip <part>...",
	Short: "Show the family a part number belongs to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := table(cmd.OutOrStdout())
		for _, part := range args {
			d, err := family.ForChip(part)
			if err != nil {
				return err
			}
			fmtx.Fprintf(tw, "%s\t%s\t-tags=%s\n", part, d.Name, d.Tag)
		}
		return tw.Flush()
	},
}

func table(w io.Writer) *tabwriter.Writer { return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0) }

// lookupFamily accepts a build tag, family name or part number.
func lookupFamily(s string) (family.Descriptor, error) {
	if d, ok := family.Lookup(s); ok {
		return d, nil
	}
	return family.ForChip(s)
}
