// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"icebath_directory/internal/app"
	"icebath_directory/internal/domain"
)

type Handlers struct{ D *app.DirectoryService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type cityResponse struct {
	domain.CityData
	DisplayName string     `json:"displayName"`
	Title       string     `json:"title"`
	Filter      app.Filter `json:"filter,omitempty"`
}

type countryResponse struct {
	domain.CountryData
	Slug      string        `json:"slug"`
	Language  string        `json:"language"`
	Direction app.Direction `json:"direction"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/cities", h.listCities)
	s.mux.Get("/v1/cities/{slug}", h.getCity)
	s.mux.Get("/v1/cities/{slug}/country", h.getCityCountry)
	s.mux.Get("/v1/cities/{slug}/{amenity}", h.getCityByAmenityPath)
	s.mux.Get("/v1/countries", h.listCountries)
	s.mux.Get("/v1/countries/{country}", h.getCountry)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON answers 304 when the client already holds this version.
func writeJSON(w http.ResponseWriter, r *http.Request, v any, headers map[string]string) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not encode response")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	for k, v := range headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

// listCities returns file stems ("San-Diego"); each one is also a valid slug.
func (h *Handlers) listCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]any{"cities": h.D.ListCities()}, nil)
}

func (h *Handlers) listCountries(w http.ResponseWriter, r *http.Request) {
	type item struct {
		Name      string        `json:"name"`
		Slug      string        `json:"slug"`
		Language  string        `json:"language"`
		Direction app.Direction `json:"direction"`
	}
	items := []item{}
	for _, c := range h.D.ListCountries() {
		lang := app.LanguageForCountry(c)
		items = append(items, item{Name: c, Slug: app.CountrySlug(c), Language: lang, Direction: app.LanguageDirection(lang)})
	}
	writeJSON(w, r, map[string]any{"countries": items}, nil)
}

func (h *Handlers) writeCity(w http.ResponseWriter, r *http.Request, slug string, f app.Filter) {
	cd := h.D.GetCityData(r.Context(), slug)
	cd.Listings = app.FilterListings(cd.Listings, f)
	writeJSON(w, r, cityResponse{
		CityData:    cd,
		DisplayName: domain.DisplayName(slug),
		Title:       app.PageTitle(slug, f),
		Filter:      f,
	}, nil)
}

// getCity answers 200 with empty listings for cities that are not onboarded yet.
func (h *Handlers) getCity(w http.ResponseWriter, r *http.Request) {
	f, err := app.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid filter", "filter must be one of all, gym, sauna, therapy")
		return
	}
	h.writeCity(w, r, chi.URLParam(r, "slug"), f)
}

func (h *Handlers) getCityByAmenityPath(w http.ResponseWriter, r *http.Request) {
	f, ok := app.ParseFilterPath(chi.URLParam(r, "amenity"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown amenity page")
		return
	}
	h.writeCity(w, r, chi.URLParam(r, "slug"), f)
}

func (h *Handlers) getCityCountry(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	country := h.D.GetCountryForCity(slug)
	if country == nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "city has no country")
		return
	}
	writeJSON(w, r, map[string]any{"citySlug": slug, "country": *country}, nil)
}

// getCountry accepts "France", "france" or the language-suffixed "france-fr".
func (h *Handlers) getCountry(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "country")
	cd, err := h.D.GetCountry(r.Context(), raw)
	if errors.Is(err, domain.ErrCountryNotFound) {
		name, _ := app.ParseCountrySlug(raw)
		cd, err = h.D.GetCountry(r.Context(), name)
	}
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "country not found")
		return
	}
	lang := app.LanguageForCountry(cd.CountryName)
	writeJSON(w, r, countryResponse{
		CountryData: cd,
		Slug:        app.CountrySlug(cd.CountryName),
		Language:    lang,
		Direction:   app.LanguageDirection(lang),
	}, map[string]string{"Content-Language": lang})
}
