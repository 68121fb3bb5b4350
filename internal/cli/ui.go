package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/spriteforge/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for failures.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Batch Summary
// =============================================================================

// printBatch prints the per-sprite table followed by the totals line.
func printBatch(b *pipeline.Batch) {
	fmt.Println(batchTable(b))
	line := fmt.Sprintf("%d sprites in %s", len(b.Results), b.Duration.Round(time.Millisecond))
	switch {
	case b.Failed():
		printError("%s: %s", line, b.Summary())
	case b.Count(pipeline.StatusSkipped) > 0:
		printWarning("%s: %s", line, b.Summary())
	default:
		printSuccess("%s: %s", line, b.Summary())
	}
}

// batchTable renders one row per sprite: name, status, size, output or reason.
func batchTable(b *pipeline.Batch) string {
	rows := make([][]string, 0, len(b.Results))
	for _, r := range b.Results {
		rows = append(rows, []string{
			r.Sprite.Name,
			string(r.Status),
			masterSize(r),
			r.Stats.Total.Round(time.Millisecond).String(),
			resultDetail(r),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Sprite", "Status", "Size", "Time", "Output").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			if col != 1 || row >= len(b.Results) {
				return styleCell
			}
			return statusStyle(b.Results[row].Status).Padding(0, 1)
		}).
		Render()
}

func statusStyle(s pipeline.Status) lipgloss.Style {
	switch s {
	case pipeline.StatusOK:
		return StyleSuccess
	case pipeline.StatusSkipped:
		return StyleWarning
	default:
		return StyleError
	}
}

func masterSize(r pipeline.Result) string {
	if len(r.Variants) == 0 {
		return "-"
	}
	sz := r.Variants[0].Image.Bounds().Size()
	return fmt.Sprintf("%dx%d", sz.X, sz.Y)
}

func resultDetail(r pipeline.Result) string {
	switch r.Status {
	case pipeline.StatusOK:
		dir := filepath.Base(r.Dir)
		if r.Overflow {
			dir += " (overflow)"
		}
		return dir
	case pipeline.StatusSkipped:
		return "no visible content"
	default:
		if r.Err == nil {
			return "-"
		}
		msg := r.Err.Error()
		if i := strings.IndexByte(msg, '\n'); i >= 0 {
			msg = msg[:i]
		}
		return msg
	}
}
