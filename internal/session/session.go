// Package session holds the per-user chart view state: the active dataset,
// the axis and chart selections, theme and controls visibility. Every
// ingestion replaces the whole dataset and selection under one lock, so a
// reader never sees a half-installed upload.
package session

import (
	"fmt"
	"io"
	"sync"
	"time"

	"handchart/adapters/tabular"
	"handchart/domain/chart"
	"handchart/domain/core"
	"handchart/domain/datareadiness/ingestion"
	"handchart/internal"
	"handchart/internal/dataset"
	"handchart/internal/geometry"
	"handchart/internal/testkit"
	"handchart/ports"
)

// State is a read-only snapshot of a session
type State struct {
	ID              core.SessionID             `json:"id"`
	DatasetName     string                     `json:"datasetName"`
	Columns         []chart.Column             `json:"columns"`
	RowCount        int                        `json:"rowCount"`
	Config          chart.ChartConfig          `json:"config"`
	Theme           chart.Theme                `json:"theme"`
	ControlsVisible bool                       `json:"controlsVisible"`
	Fingerprint     string                     `json:"fingerprint,omitempty"`
	LastIngestion   *ingestion.IngestionResult `json:"lastIngestion,omitempty"`
}

// Session is one user's chart widget
type Session struct {
	id     core.SessionID
	rng    ports.RNGPort
	opts   geometry.Options
	logger *internal.Logger

	mu              sync.RWMutex
	dataset         *chart.Dataset
	config          chart.ChartConfig
	theme           chart.Theme
	controlsVisible bool
	lastIngestion   *ingestion.IngestionResult
	lastSeen        time.Time
}

// New creates an empty session. A nil rng gets a time-seeded source.
func New(id core.SessionID, rng ports.RNGPort, opts geometry.Options, logger *internal.Logger) *Session {
	if rng == nil {
		rng = ports.NewTimeSeededRand()
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Session{
		id:              id,
		rng:             rng,
		opts:            opts,
		logger:          logger,
		dataset:         chart.EmptyDataset(""),
		config:          chart.DefaultConfig(),
		theme:           chart.ThemeLight,
		controlsVisible: true,
		lastSeen:        time.Now(),
	}
}

// ID returns the session identifier
func (s *Session) ID() core.SessionID {
	return s.id
}

// Ingest parses delimited text and installs it as the active dataset.
// Malformed text never fails: it installs an empty dataset.
func (s *Session) Ingest(name string, src io.Reader) ingestion.IngestionResult {
	start := time.Now()
	ds := tabular.Parse(src, name)
	return s.install(ds, "", ingestion.SourceText, start)
}

// IngestFile reads an uploaded file, choosing the parser by extension
func (s *Session) IngestFile(filename string, src io.Reader) (ingestion.IngestionResult, error) {
	start := time.Now()
	if !tabular.SupportedExtension(filename) {
		return ingestion.IngestionResult{}, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, filename)
	}
	var reader ports.DatasetReader = tabular.NewDataReader(filename)
	ds, err := reader.Read(src)
	if err != nil {
		return ingestion.IngestionResult{}, err
	}
	return s.install(ds, "", ingestion.SourceUpload, start), nil
}

// LoadSample installs a catalog sample; an empty name picks one at random
func (s *Session) LoadSample(name string) (testkit.Sample, error) {
	start := time.Now()
	sample, err := testkit.LoadSample(name, s.rng)
	if err != nil {
		return testkit.Sample{}, err
	}
	s.install(sample.Dataset, sample.Title, ingestion.SourceSample, start)
	return sample, nil
}

// ApplyGrid validates a manual grid and installs it. On validation failure
// the session is left exactly as it was.
func (s *Session) ApplyGrid(g *dataset.Grid) (ingestion.IngestionResult, error) {
	start := time.Now()
	ds, err := g.Build("manual entry")
	if err != nil {
		return ingestion.IngestionResult{}, err
	}
	return s.install(ds, "", ingestion.SourceManual, start), nil
}

// install clears the previous dataset, selections and title, then puts the
// new dataset and its default selection in place in one step
func (s *Session) install(ds *chart.Dataset, title string, kind ingestion.SourceKind, start time.Time) ingestion.IngestionResult {
	if ds == nil {
		ds = chart.EmptyDataset("")
	}
	if ds.ID == "" {
		ds.ID = core.NewDatasetID()
	}

	cfg := chart.ChartConfig{Title: title}
	if x, y, ok := dataset.SelectDefaultColumns(ds.Columns); ok {
		cfg.XColumn, cfg.YColumn = x, y
	}

	result := ingestion.NewIngestionResult(ds.Name, kind, len(ds.Columns), len(ds.Rows), start)

	s.mu.Lock()
	cfg.ChartType = s.config.ChartType
	s.dataset = ds
	s.config = cfg
	s.lastIngestion = &result
	s.lastSeen = time.Now()
	s.mu.Unlock()

	s.logger.Info("[Session %s] installed %s dataset %q: %d columns, %d rows",
		s.id.Short(), kind, ds.Name, result.Columns, result.Rows)
	return result
}

// SetChartType switches between line, bar and pie
func (s *Session) SetChartType(name string) error {
	t, err := chart.ParseChartType(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.ChartType = t
	return nil
}

// SetXColumn selects the category axis. Unknown columns are rejected and
// the selection is unchanged.
func (s *Session) SetXColumn(column chart.Column) error {
	return s.UpdateConfig(nil, &column, nil, nil)
}

// SetYColumn selects the value axis
func (s *Session) SetYColumn(column chart.Column) error {
	return s.UpdateConfig(nil, nil, &column, nil)
}

// SetTitle sets the chart title
func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Title = title
}

// UpdateConfig applies a partial selection atomically: either every given
// field is applied or none is
func (s *Session) UpdateConfig(chartType *string, x, y *chart.Column, title *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.config
	if chartType != nil {
		t, err := chart.ParseChartType(*chartType)
		if err != nil {
			return err
		}
		next.ChartType = t
	}
	for _, col := range []*chart.Column{x, y} {
		if col != nil && col.IsEmpty() {
			return core.NewColumnNotFoundError("")
		}
	}
	if x != nil {
		next.XColumn = *x
	}
	if y != nil {
		next.YColumn = *y
	}
	if title != nil {
		next.Title = *title
	}
	if err := next.Validate(s.dataset); err != nil {
		return err
	}
	s.config = next
	return nil
}

// SetTheme sets light or dark
func (s *Session) SetTheme(theme chart.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
}

// ToggleTheme flips the theme and returns the new one
func (s *Session) ToggleTheme() chart.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = s.theme.Toggle()
	return s.theme
}

// ToggleControls shows or hides the selection controls and returns the new state
func (s *Session) ToggleControls() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controlsVisible = !s.controlsVisible
	return s.controlsVisible
}

// State returns a snapshot of the session
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{
		ID:              s.id,
		DatasetName:     s.dataset.Name,
		Columns:         append([]chart.Column{}, s.dataset.Columns...),
		RowCount:        len(s.dataset.Rows),
		Config:          s.config,
		Theme:           s.theme,
		ControlsVisible: s.controlsVisible,
		LastIngestion:   s.lastIngestion,
	}
	if !s.dataset.IsEmpty() {
		st.Fingerprint = s.dataset.Fingerprint().Short()
	}
	return st
}

// snapshot copies what a redraw needs. Dataset rows are never mutated after
// install, so sharing the slice is safe.
func (s *Session) snapshot() ([]chart.RawRow, chart.ChartConfig, chart.Theme) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset.Rows, s.config, s.theme
}

// Rows normalizes the active dataset against the current axis selection
func (s *Session) Rows() []chart.NormalizedRow {
	rows, cfg, _ := s.snapshot()
	return s.normalize(rows, cfg)
}

func (s *Session) normalize(rows []chart.RawRow, cfg chart.ChartConfig) []chart.NormalizedRow {
	out, report := dataset.NormalizeWithReport(rows, cfg.XColumn, cfg.YColumn)
	if report.DroppedCount() > 0 && s.logger.Enabled(internal.LogLevelDebug) {
		s.logger.Debug("[Session %s] dropped %d of %d rows: %v",
			s.id.Short(), report.DroppedCount(), report.RowsRead, report.CountBy())
	}
	return out
}

// Geometry recomputes the chart for the given viewport from the current state
func (s *Session) Geometry(vp chart.Viewport) *chart.Geometry {
	rows, cfg, theme := s.snapshot()
	g := geometry.Compute(geometry.Input{
		Rows:     s.normalize(rows, cfg),
		Config:   cfg,
		Viewport: vp,
		Theme:    theme,
		RNG:      s.rng,
		Options:  s.opts,
	})
	s.logger.Trace("[Session %s] %s geometry %gx%g: %s %s",
		s.id.Short(), cfg.ChartType, g.Width, g.Height, g.State, g.Reason)
	return g
}

// Summary describes the selected y column
func (s *Session) Summary() dataset.Summary {
	rows, cfg, _ := s.snapshot()
	return dataset.Summarize(s.normalize(rows, cfg), cfg.YColumn)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}
