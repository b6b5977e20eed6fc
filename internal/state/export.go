package state

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-fixtures/internal/models"
)

// Export is the name-keyed set of adopted packages, in adoption order.
type Export struct {
	order   []string
	records map[string]models.AdoptedPackage
}

// NewExport creates an empty Export
func NewExport() *Export {
	return &Export{records: make(map[string]models.AdoptedPackage)}
}

// Put stores record under its name. A record with a name already present
// replaces the earlier one in place; Put reports whether that happened.
func (e *Export) Put(record models.AdoptedPackage) bool {
	if record.Extra == nil {
		record.Extra = models.NewObject()
	}
	_, replaced := e.records[record.Name]
	if !replaced {
		e.order = append(e.order, record.Name)
	}
	e.records[record.Name] = record
	return replaced
}

// Get returns the record stored for name.
func (e *Export) Get(name string) (models.AdoptedPackage, bool) {
	record, ok := e.records[name]
	return record, ok
}

// Records returns the records in adoption order.
func (e *Export) Records() []models.AdoptedPackage {
	out := make([]models.AdoptedPackage, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.records[name])
	}
	return out
}

// Len returns the number of records.
func (e *Export) Len() int {
	return len(e.order)
}

// MarshalJSON writes the records as an object keyed by name.
func (e *Export) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, record := range e.Records() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := models.EncodeJSON(record.Name)
		if err != nil {
			return nil, err
		}
		value, err := models.EncodeJSON(record)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// NewRecord builds the exported record of pkg. The path points from dataDir
// to the package location, which is resolved against baseDir unless it is
// already absolute.
func NewRecord(pkg *models.Package, baseDir, dataDir string) models.AdoptedPackage {
	target := pkg.Location
	if !filepath.IsAbs(filepath.FromSlash(target)) {
		target = filepath.Join(baseDir, strings.TrimRight(target, "/"))
	}

	return models.AdoptedPackage{
		Name:  pkg.Name,
		Type:  pkg.Type,
		Path:  ShortestPath(dataDir, target),
		Extra: pkg.Extra,
	}
}

// ShortestPath returns the relative path from the directory from to to, or
// to itself when the two share nothing but the filesystem root. Composer's
// own helper keeps such paths relative when asked to prefer relative paths;
// this one never does.
func ShortestPath(from, to string) string {
	from = filepath.Clean(from)
	to = filepath.Clean(to)

	if firstSegment(from) != firstSegment(to) {
		return filepath.ToSlash(to)
	}

	rel, err := filepath.Rel(from, to)
	if err != nil {
		return filepath.ToSlash(to)
	}
	return filepath.ToSlash(rel)
}

func firstSegment(p string) string {
	p = filepath.ToSlash(p)
	volume := filepath.VolumeName(p)
	rest := strings.TrimPrefix(strings.TrimPrefix(p, volume), "/")
	segment, _, _ := strings.Cut(rest, "/")
	return volume + "/" + segment
}
