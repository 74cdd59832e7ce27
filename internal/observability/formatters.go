// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/alumni-research/internal/db"
	"github.com/jonathan/alumni-research/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of an alumni profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:       %s\n", profile.FullName))
	if profile.CurrentPosition != nil {
		sb.WriteString(fmt.Sprintf("Position:   %s at %s\n", profile.CurrentPosition.Title, profile.CurrentPosition.Company))
	}
	if profile.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:   %s\n", profile.Location))
	}
	if profile.Industry != nil {
		sb.WriteString(fmt.Sprintf("Industry:   %s\n", *profile.Industry))
	}
	if profile.GraduationYear != 0 {
		sb.WriteString(fmt.Sprintf("Graduated:  %d\n", profile.GraduationYear))
	}
	if profile.LinkedInURL != "" {
		sb.WriteString(fmt.Sprintf("LinkedIn:   %s\n", profile.LinkedInURL))
	}
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", profile.ConfidenceScore))

	if len(profile.Education) > 0 {
		sb.WriteString("\nEducation:\n")
		count := min(len(profile.Education), maxItemsToShow)
		for i := 0; i < count; i++ {
			edu := profile.Education[i]
			sb.WriteString(fmt.Sprintf("  • %s", edu.Institution))
			if edu.Degree != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", edu.Degree))
			}
			sb.WriteString("\n")
		}
	}

	if len(profile.DataSources) > 0 {
		sb.WriteString(fmt.Sprintf("\nData sources: %d\n", len(profile.DataSources)))
	}

	p.printBox("ALUMNI PROFILE", strings.TrimRight(sb.String(), "\n"))
}

// PrintTask outputs a human-readable summary of a collection task.
func (p *Printer) PrintTask(task *types.CollectionTask) {
	if task == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Task:      %s\n", task.ID))
	sb.WriteString(fmt.Sprintf("Status:    %s\n", task.Status))
	sb.WriteString(fmt.Sprintf("Method:    %s\n", task.Method))
	sb.WriteString(fmt.Sprintf("Progress:  %d/%d names\n", task.ProcessedCount, len(task.InputNames)))

	if len(task.AcceptedProfiles) > 0 {
		sb.WriteString("\nAccepted:\n")
		count := min(len(task.AcceptedProfiles), maxItemsToShow)
		for i := 0; i < count; i++ {
			accepted := task.AcceptedProfiles[i]
			sb.WriteString(fmt.Sprintf("  • %s (%.2f)\n", accepted.FullName, accepted.ConfidenceScore))
		}
		if len(task.AcceptedProfiles) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(task.AcceptedProfiles)-maxItemsToShow))
		}
	}

	if len(task.RejectedNames) > 0 {
		sb.WriteString("\nRejected:\n")
		count := min(len(task.RejectedNames), maxItemsToShow)
		for i := 0; i < count; i++ {
			rejected := task.RejectedNames[i]
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", rejected.Name, rejected.Reason))
		}
		if len(task.RejectedNames) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(task.RejectedNames)-maxItemsToShow))
		}
	}

	if task.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("\nError: %s\n", task.ErrorMessage))
	}

	p.printBox("COLLECTION TASK", strings.TrimRight(sb.String(), "\n"))
}

// PrintStats outputs collection-wide statistics.
func (p *Printer) PrintStats(stats *db.Stats) {
	if stats == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Profiles:       %d (%d with LinkedIn)\n", stats.TotalProfiles, stats.WithLinkedIn))
	sb.WriteString(fmt.Sprintf("Avg confidence: %.2f\n", stats.AverageConfidence))
	sb.WriteString(fmt.Sprintf("Tasks:          %d (%d running)\n", stats.TotalTasks, stats.RunningTasks))

	if len(stats.ByIndustry) > 0 {
		sb.WriteString("\nBy industry:\n")
		industries := make([]string, 0, len(stats.ByIndustry))
		for industry := range stats.ByIndustry {
			industries = append(industries, industry)
		}
		sort.Strings(industries)
		for _, industry := range industries {
			sb.WriteString(fmt.Sprintf("  • %-15s %d\n", industry, stats.ByIndustry[industry]))
		}
	}

	p.printBox("COLLECTION STATS", strings.TrimRight(sb.String(), "\n"))
}
