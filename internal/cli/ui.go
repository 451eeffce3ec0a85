package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tilestack/pkg/tileset"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorRed    = lipgloss.Color("167") // Soft red - errors
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

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBorder = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
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

// =============================================================================
// Tables
// =============================================================================

// tileLabel renders a tile as its variant ids, bottom layer first.
func tileLabel(t tileset.Tile) string {
	if len(t) == 0 {
		return "·"
	}
	ids := make([]string, len(t))
	for i, l := range t {
		ids[i] = l.ID
	}
	return strings.Join(ids, "/")
}

// boardTable renders a board as a bordered grid, one cell per tile.
func boardTable(set tileset.TileSet) *table.Table {
	headers := make([]string, set.Columns()+1)
	for i := 1; i < len(headers); i++ {
		headers[i] = fmt.Sprint(i - 1)
	}

	rows := make([][]string, set.Rows())
	for r, row := range set {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, fmt.Sprint(r))
		for _, tile := range row {
			cells = append(cells, tileLabel(tile))
		}
		rows[r] = cells
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 || col == 0 {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// writeBoardTable writes the board grid to w.
func writeBoardTable(w io.Writer, set tileset.TileSet) error {
	_, err := fmt.Fprintln(w, boardTable(set).Render())
	return err
}

// groupTable summarizes a theme's layer groups.
func groupTable(t *tileset.Theme) *table.Table {
	rows := make([][]string, len(t.LayerGroups))
	for i, g := range t.LayerGroups {
		ids := make([]string, len(g.Variants))
		for j, v := range g.Variants {
			ids[j] = v.ID
		}
		rows[i] = []string{fmt.Sprint(i), g.Name, fmt.Sprint(len(g.Variants)), strings.Join(ids, ", ")}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("#", "Group", "Variants", "IDs").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle()
		})
}
