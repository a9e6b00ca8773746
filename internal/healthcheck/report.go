package healthcheck

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// WriteReport prints results as an aligned table.
func WriteReport(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "NAME\tKIND\tSTATUS\tLATENCY\tERROR")
	for _, r := range results {
		status := "healthy"
		errText := "-"
		if !r.Healthy {
			status = "unhealthy"
			if r.Err != nil {
				errText = r.Err.Error()
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Target.Name, r.Target.Kind, status, r.Latency.Round(time.Millisecond), errText)
	}

	return tw.Flush()
}
