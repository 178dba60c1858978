package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/bisegni/qprint/pkg/export"
	"github.com/spf13/cobra"
)

var paramsCmd = &cobra.Command{
	Use:       "params [csv|dsv]",
	Short:     "List the export parameters of a format",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"csv", "dsv"},
	RunE: func(cmd *cobra.Command, args []string) error {
		formats := []export.Format{export.FormatCSV, export.FormatDSV}
		if len(args) == 1 {
			f, err := export.ParseFormat(args[0])
			if err != nil {
				return err
			}
			formats = formats[:0]
			formats = append(formats, f)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for i, f := range formats {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "%s\n", f)
			fmt.Fprintln(w, "NAME\tTYPE\tDEFAULT\tDESCRIPTION")
			for _, p := range export.Parameters(f) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Type, p.Default, p.Description)
			}
		}
		return w.Flush()
	},
}
