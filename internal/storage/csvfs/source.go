package csvfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// source is one directory that may hold city files. Country sources come
// first (alphabetical), the legacy directory last.
type source struct {
	dir     string
	country *string
}

func (s source) path(stem string) string { return filepath.Join(s.dir, stem+fileExt) }

// has reports whether stem exists as a regular file in this source.
func (s source) has(stem string) bool {
	st, err := os.Stat(s.path(stem))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn().Err(err).Str("path", s.path(stem)).Msg("stat city file failed")
		}
		return false
	}
	return st.Mode().IsRegular()
}

func (r *Repo) sources() []source {
	countries := r.ListCountries()
	out := make([]source, 0, len(countries)+1)
	for _, c := range countries {
		name := c
		out = append(out, source{dir: filepath.Join(r.countriesDir(), c), country: &name})
	}
	return append(out, source{dir: r.legacyDir()})
}

// locate returns the first source holding stem.
func (r *Repo) locate(stem string) (source, bool) {
	for _, s := range r.sources() {
		if s.has(stem) {
			return s, true
		}
	}
	return source{}, false
}
