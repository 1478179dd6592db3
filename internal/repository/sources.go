package repository

import (
	"earnershub/internal/models"

	"go.uber.org/zap"
)

// SourceStore persists the earning sources directory.
type SourceStore = CSVTable[models.Source]

// NewSourceStore creates the directory store for the file at path
func NewSourceStore(path string, logger *zap.Logger) *SourceStore {
	return NewCSVTable[models.Source](path, SourceCodec{}, logger)
}

// SourceCodec maps directory entries to the sources file columns
type SourceCodec struct{}

func (SourceCodec) Columns() []string { return models.SourceColumns }

func (SourceCodec) Decode(row []string) (models.Source, error) {
	if err := validateDate(row[0]); err != nil {
		return models.Source{}, err
	}
	return models.Source{
		Date:        row[0],
		Name:        row[1],
		Type:        row[2],
		Link:        row[3],
		SubmittedBy: row[4],
		TrustStatus: row[5],
	}, nil
}

func (SourceCodec) Encode(s models.Source) []string {
	return []string{s.Date, s.Name, s.Type, s.Link, s.SubmittedBy, s.TrustStatus}
}

// FilterSources returns the sources whose Type equals selector, in their original order.
// The selector "All" returns every source.
func FilterSources(sources []models.Source, selector string) []models.Source {
	out := make([]models.Source, 0, len(sources))
	for _, s := range sources {
		if selector == models.SourceTypeAll || s.Type == selector {
			out = append(out, s)
		}
	}
	return out
}
