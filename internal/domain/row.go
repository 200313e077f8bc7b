package domain

// Cell is one header/value pair of a spreadsheet row.
type Cell struct {
	Key   string
	Value string
}

// Row keeps the column order of the source header, which the name
// fallback chain depends on.
type Row []Cell

func (r Row) Get(key string) (string, bool) {
	for _, c := range r {
		if c.Key == key {
			return c.Value, true
		}
	}
	return "", false
}
