package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/thebartekbanach/pixbatch/pkg/jobstore"
)

// DefaultImageURLsField is the CSV column holding the comma-delimited
// image location list of each product row.
const DefaultImageURLsField = "Input Image Urls"

type csvRowParser struct {
	imageURLsField string
}

var _ RowParser = (*csvRowParser)(nil)

func NewCSVRowParser(imageURLsField string) RowParser {
	if imageURLsField == "" {
		imageURLsField = DefaultImageURLsField
	}

	return &csvRowParser{imageURLsField}
}

func (p *csvRowParser) ParseRows(r io.Reader) ([]jobstore.ProductModel, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyDocument
	}
	if err != nil {
		return nil, err
	}

	imageColumnFound := false
	for _, columnName := range header {
		if columnName == p.imageURLsField {
			imageColumnFound = true
			break
		}
	}
	if !imageColumnFound {
		return nil, ErrImageColumnNotFound
	}

	products := []jobstore.ProductModel{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		fields := make(map[string]string, len(header))
		for i, columnName := range header {
			fields[columnName] = row[i]
		}

		products = append(products, jobstore.ProductModel{
			Fields:         fields,
			InputImageRefs: splitImageRefs(fields[p.imageURLsField]),
		})
	}

	return products, nil
}

func splitImageRefs(rawList string) []string {
	refs := []string{}
	for _, ref := range strings.Split(rawList, ",") {
		ref = strings.TrimSpace(ref)
		if ref != "" {
			refs = append(refs, ref)
		}
	}

	return refs
}

var (
	ErrEmptyDocument       = errors.New("document contains no header row")
	ErrImageColumnNotFound = errors.New("image URLs column not found in header")
)
