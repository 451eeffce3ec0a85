package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/tilestack/pkg/errors"
	"github.com/matzehuels/tilestack/pkg/pipeline"
	"github.com/matzehuels/tilestack/pkg/tileset"
)

// generateFlags holds flags for the generate command.
type generateFlags struct {
	rowSize    int
	columnSize int
	seed       uint64
	strict     bool
	format     string
	output     string
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	flags := generateFlags{format: pipeline.FormatJSON}

	cmd := &cobra.Command{
		Use:   "generate <theme>",
		Short: "Generate a board from a theme",
		Long: `Generate a board from a theme.

The board has column-size rows of row-size tiles. Output is JSON (the same
shape the API returns) or a table of variant ids per tile.`,
		Example: `  tilestack generate hongKong
  tilestack generate hongKong --row-size 4 --column-size 4 --seed 42 --format table
  tilestack generate hongKong -o board.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(flags.format); err != nil {
				return err
			}
			if !cmd.Flags().Changed("row-size") {
				flags.rowSize = c.Config.Generator.DefaultRowSize
			}
			if !cmd.Flags().Changed("column-size") {
				flags.columnSize = c.Config.Generator.DefaultColumnSize
			}
			return c.runGenerate(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.rowSize, "row-size", pipeline.DefaultRowSize, "tiles per row")
	cmd.Flags().IntVar(&flags.columnSize, "column-size", pipeline.DefaultColumnSize, "number of rows")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "random seed (0 = random)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail when a layer group cannot cover every tile")
	cmd.Flags().StringVarP(&flags.format, "format", "f", flags.format, "output format: json, table")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, themeID string, flags generateFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	res, err := runner.Generate(ctx, pipeline.Options{
		Theme:      themeID,
		RowSize:    flags.rowSize,
		ColumnSize: flags.columnSize,
		Seed:       flags.seed,
		Strict:     flags.strict,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d tiles", res.Stats.Tiles), "seed", res.Seed, "fixture", res.Fixture)

	if !res.Fixture {
		if t, err := runner.Theme(ctx, themeID); err == nil {
			if err := tileset.Check(res.TileSet, t); err != nil {
				logger.Warn("board is incomplete", "reason", errs.UserMessage(err))
			}
		}
	}

	if flags.output == "" {
		return writeBoard(cmd.OutOrStdout(), res.TileSet, flags.format)
	}

	f, err := os.Create(flags.output)
	if err != nil {
		return err
	}
	if err := writeBoard(f, res.TileSet, flags.format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	printSuccess("Generated %s board", StyleHighlight.Render(themeID))
	printFile(flags.output)
	if !res.Fixture {
		printDetail("seed %d", res.Seed)
	}
	return nil
}

// writeBoard encodes set to w in the given format.
func writeBoard(w io.Writer, set tileset.TileSet, format string) error {
	if format == pipeline.FormatTable {
		return writeBoardTable(w, set)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(set)
}
