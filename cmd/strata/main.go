// Package main provides the strata CLI.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// cli holds the flag values shared by every command.
type cli struct {
	logFormat string
	verbose   bool
	jsonOut   bool

	out    string
	format string
	level  int

	app *App
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "strata",
		Short: "Strata - nested faces of a two-column line arrangement",
		Long: `Strata builds the planar subdivision induced by segments joining two
columns of points, peels its faces into nested levels from the frame inward
and reports the area of every level.

Inputs are Lisp scripts (.lisp) or YAML documents (.yaml).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), c.logFormat, c.verbose)
			if err != nil {
				return err
			}
			c.app = NewApp(logger)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&c.logFormat, "log-format", "text", "Log format (text or json)")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log construction details")

	runCmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Build every subdivision in a file and print its summary",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runRun,
	}
	runCmd.Flags().BoolVar(&c.jsonOut, "json", false, "Output as JSON")

	levelsCmd := &cobra.Command{
		Use:   "levels <file>",
		Short: "Print the polygons and area of every level",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runLevels,
	}
	levelsCmd.Flags().BoolVar(&c.jsonOut, "json", false, "Output as JSON")

	exportCmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Draw the last subdivision in a file",
		Long: `Draw the last subdivision in a file.

Examples:
  strata export six.yaml -o six.svg            # Whole subdivision as SVG
  strata export six.lisp -o six.dxf            # Line work as DXF
  strata export six.lisp -o l3.svg --level 3   # A single level`,
		Args: cobra.ExactArgs(1),
		RunE: c.runExport,
	}
	exportCmd.Flags().StringVarP(&c.out, "output", "o", "", "Output file (required)")
	exportCmd.Flags().StringVar(&c.format, "format", "", "Output format (dxf or svg, default from extension)")
	exportCmd.Flags().IntVar(&c.level, "level", -1, "Draw only this level")
	_ = exportCmd.MarkFlagRequired("output")

	checkCmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate every subdivision in a file",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runCheck,
	}

	rootCmd.AddCommand(runCmd, levelsCmd, exportCmd, checkCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}
}

func (c *cli) runRun(cmd *cobra.Command, args []string) error {
	in, err := c.app.Load(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	summaries := make([]Summary, len(in.Graphs))
	for i, g := range in.Graphs {
		summaries[i] = c.app.Summarize(g)
	}
	if c.jsonOut {
		return writeJSON(out, summaries)
	}

	if len(in.Graphs) == 0 {
		fmt.Fprintln(out, "No subdivisions declared.")
	}
	for i, s := range summaries {
		if len(summaries) > 1 {
			fmt.Fprintf(out, "Subdivision %d\n", i)
		}
		fmt.Fprintf(out, "Vertices:       %d per column\n", s.Vertices)
		fmt.Fprintf(out, "Edges:          %d\n", s.Edges)
		fmt.Fprintf(out, "Intersections:  %d\n", s.Intersections)
		fmt.Fprintf(out, "Levels:         %d\n", s.Levels)
		fmt.Fprintf(out, "Polygons:       %d\n", s.Polygons)
		fmt.Fprintf(out, "Even area:      %.6f\n", s.EvenArea)
		fmt.Fprintf(out, "Odd area:       %.6f\n", s.OddArea)
		fmt.Fprintf(out, "Square area:    %.6f (conserved: %t)\n", s.SquareArea, s.Conserved)
		if s.Truncated {
			fmt.Fprintln(out, "Warning: level decomposition truncated")
		}
		if s.UnclosedTraces > 0 {
			fmt.Fprintf(out, "Warning: %d face traces did not close\n", s.UnclosedTraces)
		}
		fmt.Fprintln(out)
	}
	if in.Value != "" {
		fmt.Fprintf(out, "=> %s\n", in.Value)
	}
	return nil
}

func (c *cli) runLevels(cmd *cobra.Command, args []string) error {
	in, err := c.app.Load(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	all := make([][]LevelSummary, len(in.Graphs))
	for i, g := range in.Graphs {
		all[i] = c.app.Levels(g)
	}
	if c.jsonOut {
		return writeJSON(out, all)
	}

	for i, levels := range all {
		if len(all) > 1 {
			fmt.Fprintf(out, "Subdivision %d\n", i)
		}
		fmt.Fprintf(out, "%-6s %-6s %-9s %s\n", "LEVEL", "PARITY", "POLYGONS", "AREA")
		for _, l := range levels {
			fmt.Fprintf(out, "%-6d %-6s %-9d %.6f\n", l.Index, l.Parity, l.Polygons, l.Area)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func (c *cli) runExport(cmd *cobra.Command, args []string) error {
	in, err := c.app.Load(args[0])
	if err != nil {
		return err
	}
	if len(in.Graphs) == 0 {
		return fmt.Errorf("%s declares no subdivision", args[0])
	}
	g := in.Graphs[len(in.Graphs)-1]

	if err := c.app.Export(g, in.Draw, c.level, c.out, c.format); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", c.out)
	return nil
}

func (c *cli) runCheck(cmd *cobra.Command, args []string) error {
	in, err := c.app.Load(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	failed := 0
	for i, g := range in.Graphs {
		result := c.app.Check(g)
		for _, e := range result.Errors {
			fmt.Fprintf(out, "subdivision %d: %s\n", i, e.Error())
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "subdivision %d: [warning] %s\n", i, w.String())
		}
		if !result.OK() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d subdivisions failed validation", failed, len(in.Graphs))
	}
	fmt.Fprintf(out, "OK: %d subdivisions valid\n", len(in.Graphs))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
