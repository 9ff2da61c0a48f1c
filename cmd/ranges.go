package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"cdnctl/internal/daterange"
	"cdnctl/internal/query"

	"github.com/spf13/cobra"
)

var rangesCmd = &cobra.Command{
	Use:   "ranges",
	Short: "List the created date presets and their current bounds",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeRanges(os.Stdout, time.Now()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(rangesCmd)
}

// writeRanges prints one line per preset with the dates --range would apply.
func writeRanges(w io.Writer, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLABEL\tFROM\tTO")
	for _, p := range daterange.Presets {
		from, to := "-", "-"
		if r, err := daterange.Resolve(p.Name, now); err == nil {
			from, to = r.From.Format(query.DateLayout), r.To.Format(query.DateLayout)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Label, from, to)
	}
	return tw.Flush()
}
