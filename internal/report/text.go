package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ppiankov/dirspectre/internal/browse"
)

// TextReporter generates human-readable text reports
type TextReporter struct {
	writer io.Writer
}

// NewTextReporter creates a new text reporter
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{writer: w}
}

// Generate generates a text browse report
func (r *TextReporter) Generate(data Data) error {
	// Header
	fmt.Fprintf(r.writer, "DirSpectre Snapshot Report\n")
	fmt.Fprintf(r.writer, "==========================\n\n")
	fmt.Fprintf(r.writer, "Browse Time: %s\n", data.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(r.writer, "Snapshot: %s\n", data.Config.SnapshotID)
	if data.Config.DomainName != "" {
		fmt.Fprintf(r.writer, "Domain: %s\n", data.Config.DomainName)
	}
	fmt.Fprintf(r.writer, "Depth Bound: %d\n", data.Config.MaxDepth)
	fmt.Fprintf(r.writer, "\n")

	r.printSummary(data)
	r.printObjects(data.Objects)

	return nil
}

func (r *TextReporter) printSummary(data Data) {
	fmt.Fprintf(r.writer, "Summary\n")
	fmt.Fprintf(r.writer, "-------\n")
	fmt.Fprintf(r.writer, "Containers Discovered: %d\n", data.Summary.Containers)
	fmt.Fprintf(r.writer, "Total Objects: %d\n", data.Summary.TotalObjects)

	for _, kind := range data.Summary.Kinds() {
		fmt.Fprintf(r.writer, "%s: %d\n", kindString(kind), data.Summary.ByKind[kind])
	}

	if data.Summary.Unnamed > 0 {
		fmt.Fprintf(r.writer, "%s: %d\n", color.YellowString("Unnamed Objects"), data.Summary.Unnamed)
	}

	fmt.Fprintf(r.writer, "\n")
}

func (r *TextReporter) printObjects(objects []browse.ObjectRecord) {
	if len(objects) == 0 {
		fmt.Fprintf(r.writer, "%s\n", color.GreenString("No objects found in snapshot"))
		return
	}

	fmt.Fprintf(r.writer, "Objects\n")
	fmt.Fprintf(r.writer, "%s\n", strings.Repeat("-", 70))
	for _, obj := range objects {
		fmt.Fprintf(r.writer, "  %s: %s\n", kindTag(obj.Kind), obj.Name)
		if obj.DistinguishedName != "" {
			fmt.Fprintf(r.writer, "    %s\n", obj.DistinguishedName)
		}
		if obj.Description != "" {
			fmt.Fprintf(r.writer, "    %s\n", obj.Description)
		}
	}
	fmt.Fprintf(r.writer, "\n")
}

func kindString(kind string) string {
	switch browse.Kind(kind) {
	case browse.KindUser:
		return "Users"
	case browse.KindGroup:
		return "Groups"
	case browse.KindComputer:
		return "Computers"
	case browse.KindOrganizationalUnit:
		return "Organizational Units"
	case browse.KindContainer:
		return "Containers"
	case browse.KindDomain:
		return "Domains"
	default:
		return kind
	}
}

func kindTag(kind browse.Kind) string {
	tag := "[" + string(kind) + "]"
	switch kind {
	case browse.KindUser:
		return color.CyanString(tag)
	case browse.KindGroup:
		return color.MagentaString(tag)
	case browse.KindComputer:
		return color.BlueString(tag)
	case browse.KindUnknown, "":
		return color.YellowString("[UNKNOWN]")
	default:
		return tag
	}
}

// GenerateSnapshots generates a text snapshot listing
func (r *TextReporter) GenerateSnapshots(data SnapshotsData) error {
	fmt.Fprintf(r.writer, "DirSpectre Snapshot Listing\n")
	fmt.Fprintf(r.writer, "===========================\n\n")
	fmt.Fprintf(r.writer, "Listing Time: %s\n", data.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(r.writer, "Domain: %s", data.DomainID)
	if data.DomainName != "" {
		fmt.Fprintf(r.writer, " (%s)", data.DomainName)
	}
	fmt.Fprintf(r.writer, "\nTotal Snapshots: %d\n\n", len(data.Snapshots))

	if len(data.Snapshots) == 0 {
		fmt.Fprintf(r.writer, "%s\n", color.YellowString("No snapshots found for domain"))
		return nil
	}

	fmt.Fprintf(r.writer, "%s\n", strings.Repeat("-", 70))
	for _, snap := range data.Snapshots {
		status := snap.Status
		switch status {
		case "COMPLETE":
			status = color.GreenString(status)
		case "FAILED":
			status = color.RedString(status)
		}
		fmt.Fprintf(r.writer, "  %s  %s  %s", snap.Date.Format("2006-01-02 15:04:05"), snap.ID, status)
		if snap.IsIndexed {
			fmt.Fprintf(r.writer, "  indexed")
		}
		fmt.Fprintf(r.writer, "\n")
	}
	fmt.Fprintf(r.writer, "\n")

	return nil
}
