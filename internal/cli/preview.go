package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/tilestack/pkg/errors"
	"github.com/matzehuels/tilestack/pkg/pipeline"
	"github.com/matzehuels/tilestack/pkg/tileset"
)

// Board styles
var (
	cellStyle         = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	cellSelectedStyle = cellStyle.BorderForeground(colorCyan).Foreground(colorCyan).Bold(true)
	cellMatchStyle    = cellStyle.BorderForeground(colorGreen).Foreground(colorGreen)
	boardDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

// generateFunc produces a board for a seed.
type generateFunc func(seed uint64) (*pipeline.Result, error)

// BoardModel is the bubbletea model for browsing a generated board.
type BoardModel struct {
	Theme    string
	Result   *pipeline.Result
	Err      error
	Row, Col int

	generate generateFunc
}

// NewBoardModel creates a board model and generates the first board.
func NewBoardModel(themeID string, seed uint64, generate generateFunc) BoardModel {
	m := BoardModel{Theme: themeID, generate: generate}
	m.regenerate(seed)
	return m
}

func (m *BoardModel) regenerate(seed uint64) {
	res, err := m.generate(seed)
	m.Err = err
	if err != nil {
		return
	}
	m.Result = res
	if m.Row >= res.TileSet.Rows() {
		m.Row = 0
	}
	if m.Col >= res.TileSet.Columns() {
		m.Col = 0
	}
}

// Selected returns the tile under the cursor, or nil when there is no board.
func (m BoardModel) Selected() tileset.Tile {
	if m.Result == nil || m.Result.TileSet.Rows() == 0 {
		return nil
	}
	return m.Result.TileSet[m.Row][m.Col]
}

func (m BoardModel) Init() tea.Cmd {
	return nil
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	rows, cols := 0, 0
	if m.Result != nil {
		rows, cols = m.Result.TileSet.Rows(), m.Result.TileSet.Columns()
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Row > 0 {
			m.Row--
		}
	case "down", "j":
		if m.Row < rows-1 {
			m.Row++
		}
	case "left", "h":
		if m.Col > 0 {
			m.Col--
		}
	case "right", "l":
		if m.Col < cols-1 {
			m.Col++
		}
	case "r":
		m.regenerate(rand.Uint64())
	}
	return m, nil
}

func (m BoardModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Board " + m.Theme))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render("arrows: move  r: regenerate  q: quit"))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + errs.UserMessage(m.Err) + "\n")
		return b.String()
	}
	if m.Result == nil {
		return b.String()
	}

	selected := m.Selected()
	for r, row := range m.Result.TileSet {
		cells := make([]string, len(row))
		for c, tile := range row {
			style := cellStyle
			switch {
			case r == m.Row && c == m.Col:
				style = cellSelectedStyle
			case sharesLayer(tile, selected):
				style = cellMatchStyle
			}
			cells[c] = style.Render(tileLabel(tile))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  tile %d,%d  ", m.Row, m.Col))
	for i, l := range selected {
		if i > 0 {
			b.WriteString(boardDimStyle.Render(" / "))
		}
		b.WriteString(StyleValue.Render(l.GroupName+":"+l.ID))
	}
	b.WriteString("\n")

	status := fmt.Sprintf("  seed %d", m.Result.Seed)
	if m.Result.Fixture {
		status = "  fixture"
	}
	b.WriteString(boardDimStyle.Render(status))
	return b.String()
}

// sharesLayer reports whether a and b hold the same variant in any group.
func sharesLayer(a, b tileset.Tile) bool {
	for _, la := range a {
		for _, lb := range b {
			if la == lb {
				return true
			}
		}
	}
	return false
}

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		rowSize    int
		columnSize int
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "preview <theme>",
		Short: "Browse a generated board in the terminal",
		Long: `Open an interactive view of a generated board.

Tiles sharing a layer with the selected tile are highlighted; press r to
generate a new board.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("row-size") {
				rowSize = c.Config.Generator.DefaultRowSize
			}
			if !cmd.Flags().Changed("column-size") {
				columnSize = c.Config.Generator.DefaultColumnSize
			}
			if seed == 0 {
				seed = rand.Uint64()
			}

			model := NewBoardModel(args[0], seed, previewGenerator(ctx, runner, args[0], rowSize, columnSize))
			if model.Err != nil {
				return model.Err
			}
			_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().IntVar(&rowSize, "row-size", pipeline.DefaultRowSize, "tiles per row")
	cmd.Flags().IntVar(&columnSize, "column-size", pipeline.DefaultColumnSize, "number of rows")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for the first board (0 = random)")
	return cmd
}

func previewGenerator(ctx context.Context, r *pipeline.Runner, themeID string, rowSize, columnSize int) generateFunc {
	return func(seed uint64) (*pipeline.Result, error) {
		return r.Generate(ctx, pipeline.Options{
			Theme:      themeID,
			RowSize:    rowSize,
			ColumnSize: columnSize,
			Seed:       seed,
		})
	}
}
