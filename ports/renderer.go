package ports

import (
	"io"

	"handchart/domain/chart"
)

// Renderer paints computed geometry onto a drawing surface
type Renderer interface {
	// Render writes the encoded drawing for g. Empty geometry yields a cleared surface.
	Render(w io.Writer, g *chart.Geometry) error

	// ContentType is the MIME type of the encoded output
	ContentType() string
}
