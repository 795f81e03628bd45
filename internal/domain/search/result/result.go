package result

// Row is the field mapping of one matched document.
type Row map[string]string

// Document is a single hit returned by the search engine. A document without
// a field map carries no row and is skipped during hydration.
type Document struct {
	Key    string
	Fields map[string]string
}

// HasFields reports whether the document carries a field map.
func (d *Document) HasFields() bool { return d.Fields != nil }

// Rows extracts the field mappings of docs in order, skipping documents
// without fields.
func Rows(docs []Document) []Row {
	rows := make([]Row, 0, len(docs))
	for i := range docs {
		if !docs[i].HasFields() {
			continue
		}
		rows = append(rows, Row(docs[i].Fields))
	}
	return rows
}

// Get returns the value of field and whether it was present.
func (r Row) Get(field string) (string, bool) {
	v, ok := r[field]
	return v, ok
}
