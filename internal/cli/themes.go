package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tilestack/pkg/config"
	errs "github.com/matzehuels/tilestack/pkg/errors"
	"github.com/matzehuels/tilestack/pkg/pipeline"
	"github.com/matzehuels/tilestack/pkg/theme"
)

// themesCommand creates the themes command group.
func (c *CLI) themesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List, show and import themes",
	}

	cmd.AddCommand(c.themesListCommand())
	cmd.AddCommand(c.themesShowCommand())
	cmd.AddCommand(c.themesImportCommand())

	return cmd
}

// themesListCommand creates the "themes list" subcommand.
func (c *CLI) themesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List public theme ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.newRegistry(cmd.Context())
			if err != nil {
				return err
			}
			ids, err := reg.IDs(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, id := range ids {
				var notes []string
				if target, _ := reg.Resolve(id); target != id {
					notes = append(notes, iconArrow+" "+target)
				}
				if _, ok := reg.Fixture(id); ok {
					notes = append(notes, "fixture")
				}
				if len(notes) == 0 {
					fmt.Fprintln(out, id)
					continue
				}
				fmt.Fprintln(out, id+"  "+StyleDim.Render(strings.Join(notes, ", ")))
			}
			return nil
		},
	}
}

// themesShowCommand creates the "themes show" subcommand.
func (c *CLI) themesShowCommand() *cobra.Command {
	format := pipeline.FormatTable

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a theme's layer groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(format); err != nil {
				return err
			}
			reg, err := c.newRegistry(cmd.Context())
			if err != nil {
				return err
			}
			t, err := reg.Theme(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == pipeline.FormatJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				enc.SetEscapeHTML(false)
				return enc.Encode(t)
			}
			fmt.Fprintln(out, StyleTitle.Render(t.Name))
			fmt.Fprintln(out, groupTable(t).Render())
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", format, "output format: json, table")
	return cmd
}

// themesImportCommand creates the "themes import" subcommand.
func (c *CLI) themesImportCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Store a theme file in MongoDB",
		Long: `Validate a theme file (.json, .yaml, .yml or .toml) and store it in the
configured MongoDB collection. Requires themes.backend = "mongo".

The theme id defaults to the file name without extension. Add the id to
themes.ids to make it public.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if c.Config.Themes.Backend != config.BackendMongo {
				return errs.New(errs.ErrCodeUnsupported, "themes import requires themes.backend = \"mongo\" (got %q)", c.Config.Themes.Backend)
			}

			path := args[0]
			if id == "" {
				id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			t, err := theme.DecodeFile(path)
			if err != nil {
				return err
			}
			if err := theme.Validate(t); err != nil {
				printError("%s", errs.UserMessage(err))
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Connecting to MongoDB...")
			spinner.Start()
			store, err := c.newStore(ctx)
			if err != nil {
				spinner.StopWithError("Could not connect to MongoDB")
				return err
			}
			mongo, ok := store.(*theme.MongoCatalog)
			if !ok {
				spinner.Stop()
				return errs.New(errs.ErrCodeInternal, "theme store is not MongoDB")
			}
			spinner.SetMessage("Storing " + id + "...")
			if err := mongo.Put(ctx, id, t); err != nil {
				spinner.StopWithError("Import failed")
				return err
			}
			spinner.StopWithSuccess(fmt.Sprintf("Imported %s (%d groups)", StyleHighlight.Render(id), len(t.LayerGroups)))

			// Drop any stale cached copy.
			if tc, err := c.newCache(ctx); err == nil {
				_ = theme.NewCachedCatalog(store, tc, 0).Invalidate(ctx, id)
				_ = tc.Close()
			}

			if !slices.Contains(c.Config.Themes.IDs, id) {
				printInfo("Add %q to themes.ids to serve it", id)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "theme id (default: file name)")
	return cmd
}
