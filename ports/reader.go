package ports

import (
	"io"

	"handchart/domain/chart"
)

// DatasetReader turns an uploaded file into a dataset
type DatasetReader interface {
	Read(src io.Reader) (*chart.Dataset, error)
}
