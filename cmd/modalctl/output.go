package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-modals/internal/scenario"
)

func writeResult(w io.Writer, format string, result scenario.Result) error {
	if format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	return writeTable(w, result)
}

func writeTable(w io.Writer, result scenario.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if len(result.Steps) > 0 {
		fmt.Fprintln(tw, "STEP\tACTION\tTARGET\tSTACK\tNOTE")
		for _, step := range result.Steps {
			note := ""
			switch {
			case step.Error != "":
				note = step.Error
			case step.Closed != nil && !*step.Closed:
				note = "blocked"
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
				step.Index, step.Action, dash(step.Target), dash(strings.Join(step.Stack, " > ")), note)
		}
		fmt.Fprintln(tw)
	}

	fmt.Fprintln(tw, "ID\tSIDE\tPOSITION\tZ-INDEX\tACTIVE")
	for _, entry := range result.Layout.Entries {
		active := ""
		if entry.Active {
			active = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", entry.ID, entry.Side, entry.Position, entry.ZIndex, active)
	}
	if result.Layout.OverlayVisible {
		fmt.Fprintf(tw, "overlay\t\t\t%d\t\n", result.Layout.OverlayZIndex)
	}
	return tw.Flush()
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
