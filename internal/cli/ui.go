package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/paragon/pkg/stitch"
)

// =============================================================================
// Palette and Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle for headings such as the browser title.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for class names and addresses.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for file paths and values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess marks valid boards.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning marks invalid boards and partial results.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// statusIcons maps a status line kind to its rendered icon.
var statusIcons = map[string]string{
	"success": lipgloss.NewStyle().Foreground(colorGreen).Render("✓"),
	"error":   lipgloss.NewStyle().Foreground(colorRed).Render("✗"),
	"warning": lipgloss.NewStyle().Foreground(colorYellow).Render("!"),
	"info":    lipgloss.NewStyle().Foreground(colorGray).Render("›"),
}

const (
	iconSuccess = "✓"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printStatus(kind, format string, args ...any) {
	fmt.Println(statusIcons[kind] + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { printStatus("success", format, args...) }
func printError(format string, args ...any)   { printStatus("error", format, args...) }
func printInfo(format string, args ...any)    { printStatus("info", format, args...) }

func printWarning(format string, args ...any) {
	printStatus("warning", "%s", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints an output file line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value in an aligned column.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}

// =============================================================================
// Enumeration Output
// =============================================================================

// formatStats renders enumeration counters as a single dotted line, e.g.
// "288 layouts · 104 placements · 8 pruned · fresh".
func formatStats(layouts, placements, pruned int, cached bool) string {
	parts := []string{fmt.Sprintf("%d layouts", layouts)}
	if placements > 0 {
		parts = append(parts, fmt.Sprintf("%d placements", placements))
	}
	if pruned > 0 {
		parts = append(parts, fmt.Sprintf("%d pruned", pruned))
	}
	if cached {
		parts = append(parts, "cached")
	} else {
		parts = append(parts, "fresh")
	}
	return strings.Join(parts, " · ")
}

func printStats(layouts, placements, pruned int, cached bool) {
	fmt.Println("  " + StyleDim.Render(formatStats(layouts, placements, pruned, cached)))
}

// printLayouts writes stitched layouts to stdout separated by blank lines.
func printLayouts(layouts []stitch.Layout) {
	for i, l := range layouts {
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(l.String())
	}
}
