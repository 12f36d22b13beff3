package ui

import (
	"bytes"
	stderrors "errors"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"

	"handchart/domain/chart"
	"handchart/domain/core"
	"handchart/internal/dataset"
	"handchart/internal/errors"
	"handchart/internal/session"
	"handchart/internal/testkit"
	"handchart/ui/middleware"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

const maxConfigBodyBytes = 64 << 10

// manualDatasetRequest is the dataset builder grid: header names plus rows of cells
type manualDatasetRequest struct {
	Columns []string   `json:"columns" binding:"required"`
	Rows    [][]string `json:"rows" binding:"required"`
}

// writeError answers with the status the error maps to and its user-facing message
func (s *Server) writeError(c *gin.Context, handler string, err error) {
	status := errors.HTTPStatus(err)
	if !errors.IsAppError(err) {
		switch {
		case core.IsValidationError(err):
			status = http.StatusBadRequest
		case core.IsNotFoundError(err):
			status = http.StatusNotFound
		}
	}
	log.Printf("[%s] FAILED (%d) - %v", handler, status, err)
	c.JSON(status, gin.H{"error": errors.UserMessage(err)})
}

func (s *Server) ingested(c *gin.Context, sess *session.Session, payload gin.H) {
	payload["state"] = sess.State()
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
}

func (s *Server) handleIndex(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	s.renderTemplate(c, "index.html", gin.H{
		"State":   sess.State(),
		"Samples": testkit.Catalog(),
		"Width":   s.config.Render.DefaultWidth,
	})
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentSession(c).State())
}

func (s *Server) handleSamples(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"samples": testkit.Catalog()})
}

// handleFileUpload ingests a multipart "file" field (.csv, .txt or .xlsx)
func (s *Server) handleFileUpload(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	maxBytes := s.config.Upload.MaxBytes

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(c, "handleFileUpload", errors.TooLarge("File exceeds the upload size limit"))
			return
		}
		s.writeError(c, "handleFileUpload", errors.InvalidInput("No file uploaded"))
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		s.writeError(c, "handleFileUpload", errors.TooLarge("File exceeds the upload size limit"))
		return
	}

	log.Printf("[handleFileUpload] Session %s: %s (%d bytes)", sess.ID().Short(), header.Filename, header.Size)
	result, err := sess.IngestFile(header.Filename, file)
	if err != nil {
		if stderrors.Is(err, core.ErrUnsupportedFormat) {
			err = errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "Only CSV (.csv, .txt) and Excel (.xlsx) files are allowed"))
		}
		s.writeError(c, "handleFileUpload", err)
		return
	}
	log.Printf("[handleFileUpload] SUCCESS - %d columns, %d rows in %dms", result.Columns, result.Rows, result.DurationMs)
	s.ingested(c, sess, gin.H{"ingestion": result})
}

// handleTextIngest ingests a raw CSV request body
func (s *Server) handleTextIngest(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.config.Upload.MaxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeError(c, "handleTextIngest", errors.TooLarge("Text exceeds the upload size limit"))
			return
		}
		s.writeError(c, "handleTextIngest", errors.Wrap(err, "failed to read request body"))
		return
	}

	result := sess.Ingest(c.DefaultQuery("name", "pasted data"), bytes.NewReader(body))
	s.ingested(c, sess, gin.H{"ingestion": result})
}

// handleLoadSample loads ?name=, or a random sample when the name is absent
func (s *Server) handleLoadSample(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	sample, err := sess.LoadSample(c.Query("name"))
	if err != nil {
		s.writeError(c, "handleLoadSample", err)
		return
	}
	s.ingested(c, sess, gin.H{"sample": sample})
}

// handleManualDataset validates a builder grid and installs it
func (s *Server) handleManualDataset(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	var req manualDatasetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, "handleManualDataset", errors.InvalidInput("Request body must be {\"columns\": [...], \"rows\": [[...]]}"))
		return
	}

	grid, err := dataset.GridFromCells(req.Columns, req.Rows)
	if err != nil {
		s.writeError(c, "handleManualDataset", errors.WithCode(errors.CodeValidationError, err))
		return
	}
	result, err := sess.ApplyGrid(grid)
	if err != nil {
		s.writeError(c, "handleManualDataset", err)
		return
	}
	s.ingested(c, sess, gin.H{"ingestion": result})
}

// handleUpdateConfig applies any of chartType, xColumn, yColumn, title and
// theme from a partial JSON body. Nothing changes when one field is invalid.
func (s *Server) handleUpdateConfig(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxConfigBodyBytes))
	if err != nil {
		s.writeError(c, "handleUpdateConfig", errors.Wrapf(err, "failed to read config body (limit %d bytes)", maxConfigBodyBytes))
		return
	}
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsObject() {
		s.writeError(c, "handleUpdateConfig", errors.InvalidInput("Request body must be a JSON object"))
		return
	}
	fields := gjson.ParseBytes(body)

	var chartType, title *string
	var x, y *chart.Column
	if v := fields.Get("chartType"); v.Exists() {
		t := v.String()
		chartType = &t
	}
	if v := fields.Get("xColumn"); v.Exists() {
		col := chart.Column(v.String())
		x = &col
	}
	if v := fields.Get("yColumn"); v.Exists() {
		col := chart.Column(v.String())
		y = &col
	}
	if v := fields.Get("title"); v.Exists() {
		t := v.String()
		title = &t
	}

	if err := sess.UpdateConfig(chartType, x, y, title); err != nil {
		s.writeError(c, "handleUpdateConfig", errors.WithCode(errors.CodeValidationError, err))
		return
	}
	if v := fields.Get("theme"); v.Exists() {
		sess.SetTheme(chart.ParseTheme(v.String()))
	}
	c.JSON(http.StatusOK, sess.State())
}

func (s *Server) handleToggleTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": middleware.CurrentSession(c).ToggleTheme()})
}

func (s *Server) handleToggleControls(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"controlsVisible": middleware.CurrentSession(c).ToggleControls()})
}

// viewport reads ?width= and ?height=. Width defaults to the configured
// default and height to zero, which lets the layout pick its target height.
// Both are capped by the render config.
func (s *Server) viewport(c *gin.Context) (chart.Viewport, error) {
	vp := chart.Viewport{Width: s.config.Render.DefaultWidth}
	var err error
	if vp.Width, err = dimension(c.Query("width"), vp.Width); err != nil {
		return vp, errors.InvalidInput("width must be a non-negative number")
	}
	if vp.Height, err = dimension(c.Query("height"), 0); err != nil {
		return vp, errors.InvalidInput("height must be a non-negative number")
	}
	if err := s.config.Render.CheckViewport(vp.Width, vp.Height); err != nil {
		return vp, err
	}
	return vp, nil
}

func dimension(raw string, fallback float64) (float64, error) {
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func (s *Server) geometry(c *gin.Context, handler string) (*chart.Geometry, bool) {
	vp, err := s.viewport(c)
	if err != nil {
		s.writeError(c, handler, err)
		return nil, false
	}
	return middleware.CurrentSession(c).Geometry(vp), true
}

func (s *Server) handleGeometry(c *gin.Context) {
	g, ok := s.geometry(c, "handleGeometry")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) handleChartSVG(c *gin.Context) {
	g, ok := s.geometry(c, "handleChartSVG")
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := s.svg.Render(&buf, g); err != nil {
		s.writeError(c, "handleChartSVG", errors.Wrap(err, "failed to render chart"))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, s.svg.ContentType(), buf.Bytes())
}

// handleChartPNG rasterizes the chart. At most MaxConcurrentRasters requests
// paint at once; the rest wait until a slot frees or the client goes away.
func (s *Server) handleChartPNG(c *gin.Context) {
	g, ok := s.geometry(c, "handleChartPNG")
	if !ok {
		return
	}
	if err := s.rasters.Acquire(c.Request.Context(), 1); err != nil {
		s.writeError(c, "handleChartPNG", errors.WithCode(errors.CodeUnavailable, err))
		return
	}
	defer s.rasters.Release(1)

	var buf bytes.Buffer
	if err := s.png.Render(&buf, g); err != nil {
		s.writeError(c, "handleChartPNG", errors.Wrap(err, "failed to rasterize chart"))
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, s.png.ContentType(), buf.Bytes())
}

func (s *Server) handleSummary(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentSession(c).Summary())
}
