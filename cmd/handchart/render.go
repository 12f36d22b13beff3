package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"handchart/adapters/render"
	"handchart/domain/chart"
	"handchart/domain/core"
	"handchart/internal"
	"handchart/internal/config"
	"handchart/internal/session"
	"handchart/ports"

	"github.com/spf13/cobra"
)

type renderOptions struct {
	sample    string
	xColumn   string
	yColumn   string
	chartType string
	title     string
	theme     string
	format    string
	out       string
	width     float64
	height    float64
	seed      int64
}

func newRenderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a chart from a CSV/XLSX file or a sample dataset",
		Long: `Render a chart as SVG, PNG or geometry JSON.

The data comes from the file argument ("-" reads CSV from stdin) or, without
one, from --sample (a random sample when --sample is empty).

Example: handchart render sales.csv --type bar --y revenue --format png --out sales.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, closeOut, err := openOutput(cmd.OutOrStdout(), opts.out)
			if err != nil {
				return err
			}
			defer closeOut()
			return runRender(out, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.sample, "sample", "", "Sample dataset name (see 'handchart samples')")
	cmd.Flags().StringVar(&opts.xColumn, "x", "", "Category column (default: first column)")
	cmd.Flags().StringVar(&opts.yColumn, "y", "", "Value column (default: second column)")
	cmd.Flags().StringVar(&opts.chartType, "type", "line", "Chart type: line|bar|pie")
	cmd.Flags().StringVar(&opts.title, "title", "", "Chart title")
	cmd.Flags().StringVar(&opts.theme, "theme", "light", "Theme: light|dark")
	cmd.Flags().StringVar(&opts.format, "format", "svg", "Output format: svg|png|json")
	cmd.Flags().StringVar(&opts.out, "out", "", "Output file (default: stdout)")
	cmd.Flags().Float64Var(&opts.width, "width", 800, "Viewport width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "Viewport height (0 picks the layout height)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 42, "Random seed for line color, sample choice and pen jitter")

	return cmd
}

func openOutput(stdout io.Writer, path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func runRender(w io.Writer, args []string, opts renderOptions) error {
	renderer, err := newRenderer(opts.format, opts.seed)
	if err != nil {
		return err
	}
	if closer, ok := renderer.(io.Closer); ok {
		defer closer.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.width < 0 || opts.height < 0 || math.IsNaN(opts.width) || math.IsNaN(opts.height) {
		return fmt.Errorf("width and height must be non-negative")
	}
	if err := cfg.Render.CheckViewport(opts.width, opts.height); err != nil {
		return err
	}
	logger := internal.NewLogger(internal.LogLevelWarn)
	sess := session.New(core.NewSessionID(), ports.NewSeededRand(opts.seed), cfg.Render.GeometryOptions(), logger)

	if err := loadData(sess, args, opts.sample); err != nil {
		return err
	}

	chartType := &opts.chartType
	var title *string
	var x, y *chart.Column
	if opts.title != "" {
		title = &opts.title
	}
	if opts.xColumn != "" {
		col := chart.Column(opts.xColumn)
		x = &col
	}
	if opts.yColumn != "" {
		col := chart.Column(opts.yColumn)
		y = &col
	}
	if err := sess.UpdateConfig(chartType, x, y, title); err != nil {
		return fmt.Errorf("invalid chart selection: %w (columns: %s)", err, columnList(sess.State().Columns))
	}
	sess.SetTheme(chart.ParseTheme(opts.theme))

	g := sess.Geometry(chart.Viewport{Width: opts.width, Height: opts.height})
	if !g.Ready() {
		logger.Warn("[render] nothing to draw: %s", g.Reason)
	}

	if renderer == nil {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}
	return renderer.Render(w, g)
}

// newRenderer returns nil for the json format
func newRenderer(format string, seed int64) (ports.Renderer, error) {
	style := render.DefaultStyle()
	style.Seed = seed

	switch strings.ToLower(format) {
	case "svg":
		return render.NewSVGRenderer(style), nil
	case "png":
		return render.NewPNGRenderer(style)
	case "json":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want svg, png or json)", format)
	}
}

func loadData(sess *session.Session, args []string, sample string) error {
	if len(args) == 0 {
		_, err := sess.LoadSample(sample)
		return err
	}

	path := args[0]
	if path == "-" {
		sess.Ingest("stdin", os.Stdin)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	defer f.Close()

	_, err = sess.IngestFile(filepath.Base(path), f)
	return err
}

func columnList(columns []chart.Column) string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}
