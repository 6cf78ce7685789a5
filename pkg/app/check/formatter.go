package check

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-partcheck/pkg/analysis"
	"github.com/deploymenttheory/go-partcheck/pkg/app"
	"github.com/deploymenttheory/go-partcheck/pkg/partition"
)

// FormatOptions controls how a response is rendered
type FormatOptions struct {
	Format  string
	NoColor bool
}

// FormatOutput renders a check response in the requested format
func FormatOutput(w io.Writer, response *Response, opts FormatOptions) error {
	switch opts.Format {
	case app.FormatJSON:
		return formatJSON(w, response)
	case app.FormatYAML:
		return formatYAML(w, response)
	case app.FormatTable, "":
		return formatTable(w, response, newStyles(w, opts.NoColor))
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}

// FormatEntries renders a bare partition list
func FormatEntries(w io.Writer, entries []partition.Entry, opts FormatOptions) error {
	switch opts.Format {
	case app.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	case app.FormatYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		encoder.SetIndent(2)
		return encoder.Encode(entries)
	case app.FormatTable, "":
		if len(entries) == 0 {
			fmt.Fprintln(w, "No partitions matched.")
			return nil
		}
		writeEntryTable(w, entries)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}

// FormatMissing renders the report for a table that could not be found
func FormatMissing(w io.Writer, path string, opts FormatOptions) {
	if opts.Format != app.FormatTable && opts.Format != "" {
		return
	}
	s := newStyles(w, opts.NoColor)
	writeBanner(w, s)
	fmt.Fprintln(w, s.status(analysis.SeverityError, fmt.Sprintf("file %s does not exist", path)))
	writeVerdict(w, s, path, false)
}

// formatTable writes the human readable report
func formatTable(w io.Writer, response *Response, s styles) error {
	writeBanner(w, s)

	for _, le := range response.LineErrors {
		fmt.Fprintln(w, s.status(analysis.SeverityWarning, fmt.Sprintf("line %d parse error: %s", le.Line, le.Reason)))
	}

	if !response.Valid() || response.Result == nil {
		fmt.Fprintln(w, s.status(analysis.SeverityError, "no valid partition configuration found"))
		writeVerdict(w, s, response.Source, false)
		return nil
	}

	writeEntries(w, s, response.Entries)
	writeSpace(w, s, response.Result.Space)
	writeOTA(w, s, response.Result.OTA)
	writeOverlaps(w, s, response.Result.Overlaps)
	writeAdvice(w, s, response.Result.Advice)
	writeVerdict(w, s, response.Source, true)
	return nil
}

func writeBanner(w io.Writer, s styles) {
	fmt.Fprintln(w, s.title.Render("🔍 ESP32S3 Partition Table Checker"))
	fmt.Fprintln(w, strings.Repeat("=", 50))
}

func writeSection(w io.Writer, s styles, title string, width int) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.title.Render(title))
	fmt.Fprintln(w, strings.Repeat("-", width))
}

func writeEntries(w io.Writer, s styles, entries []partition.Entry) {
	writeSection(w, s, "📋 Partition Details:", 80)
	writeEntryTable(w, entries)
}

func writeEntryTable(w io.Writer, entries []partition.Entry) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tTYPE\tSUBTYPE\tOFFSET\tSIZE\tEND\n")
	fmt.Fprintf(tw, "----\t----\t-------\t------\t----\t---\n")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t0x%08x\t%s\t0x%08x\n",
			e.Name, e.Type, e.SubType, e.Offset, partition.FormatSize(e.Size), e.End())
	}
	tw.Flush()
}

func writeSpace(w io.Writer, s styles, space analysis.SpaceReport) {
	writeSection(w, s, "📊 Space Analysis:", 50)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total flash:\t%s\n", partition.FormatSize(space.Total))
	fmt.Fprintf(tw, "Available:\t%s\n", partition.FormatSize(space.Available))
	fmt.Fprintf(tw, "Used:\t%s\n", partition.FormatSize(space.Used))
	fmt.Fprintf(tw, "Remaining:\t%s\n", partition.FormatSigned(space.Remaining))
	fmt.Fprintf(tw, "Utilization:\t%.1f%%\n", space.Utilization)
	tw.Flush()

	if space.Remaining < 0 {
		fmt.Fprintln(w, s.status(analysis.SeverityError,
			fmt.Sprintf("partitions exceed available flash by %s", partition.FormatSize(uint64(-space.Remaining)))))
	}
}

func writeOTA(w io.Writer, s styles, ota analysis.OTAReport) {
	writeSection(w, s, "🔄 OTA Check:", 30)

	if !ota.Sufficient {
		fmt.Fprintln(w, s.status(analysis.SeverityError,
			fmt.Sprintf("insufficient OTA partitions (need at least %d app partitions, found %d)", ota.Required, ota.Count())))
		return
	}

	fmt.Fprintln(w, s.status(analysis.SeverityOK, "OTA partitions configured correctly"))
	for _, slot := range ota.Slots {
		fmt.Fprintf(w, "   %s: %s\n", slot.Name, partition.FormatSize(slot.Size))
	}
}

func writeOverlaps(w io.Writer, s styles, overlaps []analysis.Overlap) {
	writeSection(w, s, "🔍 Overlap Check:", 20)

	if len(overlaps) == 0 {
		fmt.Fprintln(w, s.status(analysis.SeverityOK, "no partition overlaps"))
		return
	}
	for _, o := range overlaps {
		fmt.Fprintln(w, s.status(analysis.SeverityError,
			fmt.Sprintf("overlap detected: %s and %s", o.First.Name, o.Second.Name)))
	}
}

func writeAdvice(w io.Writer, s styles, advice []analysis.Diagnostic) {
	writeSection(w, s, "💡 Recommendations:", 20)

	for _, d := range advice {
		fmt.Fprintln(w, s.status(d.Severity, d.Message))
	}
}

func writeVerdict(w io.Writer, s styles, source string, ok bool) {
	fmt.Fprintln(w)
	if ok {
		fmt.Fprintln(w, s.title.Render(fmt.Sprintf("🎉 Partition table %s check complete!", source)))
		return
	}
	fmt.Fprintln(w, s.fail.Render(fmt.Sprintf("%s Partition table %s check failed!", GlyphError, source)))
}

// formatJSON formats results as JSON
func formatJSON(w io.Writer, response *Response) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// formatYAML formats results as YAML
func formatYAML(w io.Writer, response *Response) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(response)
}

// FormatSummary provides a one-line summary for verbose output
func FormatSummary(response *Response) string {
	if !response.Valid() || response.Result == nil {
		return fmt.Sprintf("%s: no valid partitions", response.Source)
	}

	counts := response.Result.Counts()
	summary := fmt.Sprintf("%s: %d partition", response.Source, len(response.Entries))
	if len(response.Entries) != 1 {
		summary += "s"
	}
	summary += fmt.Sprintf(", %.1f%% used, %d error(s), %d warning(s)",
		response.Result.Space.Utilization, counts[analysis.SeverityError], counts[analysis.SeverityWarning])
	return summary
}
