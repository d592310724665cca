package ingest

import (
	"io"

	"github.com/thebartekbanach/pixbatch/pkg/jobstore"
)

type RowParser interface {
	// ParseRows turns a CSV document into product records, splitting
	// the image URLs column into individual input references.
	ParseRows(r io.Reader) ([]jobstore.ProductModel, error)
}
