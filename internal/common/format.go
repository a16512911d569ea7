package common

import (
	"fmt"
	"strings"

	"treasury-ledger-go/internal/models"
)

const (
	// Default separator widths
	DefaultWidth = 80
	WideWidth    = 100
)

// PrintSeparator prints a separator line with the specified character and width
func PrintSeparator(char string, width int) {
	fmt.Println(strings.Repeat(char, width))
}

// PrintHeader prints a formatted header with title and separators
func PrintHeader(title string, width int) {
	fmt.Println("\n" + strings.Repeat("=", width))
	fmt.Println(title)
	PrintSeparator("=", width)
}

// PrintFooter prints a formatted footer with message and separators
func PrintFooter(message string, width int) {
	fmt.Println("\n" + strings.Repeat("=", width))
	fmt.Println(message)
	fmt.Println(strings.Repeat("=", width) + "\n")
}

// BoxPrefix returns the appropriate box-drawing prefix for list items
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "│  "
}

// FormatConfig renders the treasury configuration, one field per line.
func FormatConfig(cfg *models.ConfigResponse) string {
	enabled := "disabled"
	if cfg.Enabled {
		enabled = "enabled"
	}
	lines := []string{
		BoxPrefix(false) + "Owner:   " + cfg.Owner,
		BoxPrefix(false) + "Denom:   " + cfg.Denom,
		BoxPrefix(false) + "Status:  " + enabled,
		BoxPrefix(true) + "Balance: " + cfg.Amount.String() + cfg.Denom,
	}
	return strings.Join(lines, "\n")
}

// FormatHistories renders depositors as a tree, or a placeholder when empty.
func FormatHistories(entries []models.HistoryEntry, denom string) string {
	if len(entries) == 0 {
		return BoxPrefix(true) + "No deposits recorded"
	}
	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = fmt.Sprintf("%s%-45s %s%s", BoxPrefix(i == len(entries)-1), entry.Address, entry.Amount.String(), denom)
	}
	return strings.Join(lines, "\n")
}

// FormatResponse summarizes the transfers and events an operation produced.
func FormatResponse(resp *models.Response) string {
	var b strings.Builder
	for _, cmd := range resp.Messages {
		fmt.Fprintf(&b, "%stransfer %s -> %s\n", BoxPrefix(false), cmd.Amount.String(), cmd.ToAddress)
	}
	for i, event := range resp.Events {
		attrs := make([]string, 0, len(event.Attributes))
		for _, attr := range event.Attributes {
			attrs = append(attrs, attr.Key+"="+attr.Value)
		}
		fmt.Fprintf(&b, "%s%s [%s]\n", BoxPrefix(i == len(resp.Events)-1), event.Type, strings.Join(attrs, " "))
	}
	return strings.TrimRight(b.String(), "\n")
}
