package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Amenities struct {
	HasGym             bool `json:"hasGym"`
	HasSauna           bool `json:"hasSauna"`
	HasContrastTherapy bool `json:"hasContrastTherapy"`
}

// Listing is one facility row, normalized.
type Listing struct {
	Name         string       `json:"name"`
	Site         *string      `json:"site,omitempty"`
	Phone        *string      `json:"phone,omitempty"`
	SocialHandle *string      `json:"socialHandle,omitempty"`
	PriceText    *string      `json:"priceText,omitempty"`
	Rating       float64      `json:"rating"`
	ReviewCount  int          `json:"reviewCount"`
	WorkingHours WorkingHours `json:"workingHours,omitempty"`
	Amenities    Amenities    `json:"amenities"`
	CitySlug     string       `json:"citySlug"`
}

type CityData struct {
	CitySlug string    `json:"citySlug"`
	Country  *string   `json:"country"`
	Listings []Listing `json:"listings"`
}

type CountryData struct {
	CountryName string     `json:"countryName"`
	Cities      []CityData `json:"cities"`
}

// DayHours is one "Mon-Fri: 6am-9pm" entry.
type DayHours struct {
	Day   string
	Hours string
}

// WorkingHours keeps source order; it encodes as a JSON object so that
// consumers see {"Mon-Fri": "6am-9pm", ...} in the same order.
type WorkingHours []DayHours

// Set replaces the hours of an existing day in place, or appends.
func (wh *WorkingHours) Set(day, hours string) {
	for i := range *wh {
		if (*wh)[i].Day == day {
			(*wh)[i].Hours = hours
			return
		}
	}
	*wh = append(*wh, DayHours{Day: day, Hours: hours})
}

func (wh WorkingHours) Get(day string) (string, bool) {
	for _, e := range wh {
		if e.Day == day {
			return e.Hours, true
		}
	}
	return "", false
}

func (wh WorkingHours) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range wh {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Day)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Hours)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores source order from the token stream, so a cached
// CityData decodes back to the same sequence.
func (wh *WorkingHours) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*wh = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("working hours: expected object, got %v", tok)
	}
	out := WorkingHours{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		var v string
		if err := dec.Decode(&v); err != nil {
			return err
		}
		out.Set(kt.(string), v)
	}
	*wh = out
	return nil
}
