package domain_test

import (
	"encoding/json"
	"testing"

	"icebath_directory/internal/domain"
)

func TestWorkingHours_JSONKeepsOrder(t *testing.T) {
	var wh domain.WorkingHours
	wh.Set("Sun", "closed")
	wh.Set("Mon-Fri", "6am-9pm")
	wh.Set("Sun", "10am-2pm") // overwrite keeps position

	b, err := json.Marshal(wh)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), `{"Sun":"10am-2pm","Mon-Fri":"6am-9pm"}`; got != want {
		t.Fatalf("got %s want %s", got, want)
	}

	var back domain.WorkingHours
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(back) != 2 || back[0].Day != "Sun" || back[1].Day != "Mon-Fri" {
		t.Fatalf("order lost: %+v", back)
	}
	if h, ok := back.Get("Mon-Fri"); !ok || h != "6am-9pm" {
		t.Fatalf("Get: %q %v", h, ok)
	}
}

func TestWorkingHours_UnmarshalRejectsNonObject(t *testing.T) {
	var wh domain.WorkingHours
	if err := json.Unmarshal([]byte(`["Mon"]`), &wh); err == nil {
		t.Fatalf("expected error for array input")
	}
}

func TestListing_OmitsAbsentFields(t *testing.T) {
	b, err := json.Marshal(domain.Listing{Name: "A", CitySlug: "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"site", "phone", "socialHandle", "priceText", "workingHours"} {
		if _, ok := m[k]; ok {
			t.Fatalf("%s should be omitted: %s", k, b)
		}
	}
}

func TestSlugHelpers(t *testing.T) {
	cases := []struct{ slug, stem, display string }{
		{"san-diego", "San-Diego", "San Diego"},
		{"new-york", "New-York", "New York"},
		{"paris", "Paris", "Paris"},
		{"Paris", "Paris", "Paris"},
		{"tel--aviv", "Tel--Aviv", "Tel  Aviv"},
		{"zürich", "Zürich", "Zürich"},
	}
	for _, tc := range cases {
		if got := domain.SlugToFileStem(tc.slug); got != tc.stem {
			t.Fatalf("stem(%q): %q want %q", tc.slug, got, tc.stem)
		}
		if got := domain.DisplayName(tc.slug); got != tc.display {
			t.Fatalf("display(%q): %q want %q", tc.slug, got, tc.display)
		}
	}
}

func TestRowGetFirstMatch(t *testing.T) {
	r := domain.Row{{Key: "Name", Value: "first"}, {Key: "Name", Value: "second"}}
	if v, ok := r.Get("Name"); !ok || v != "first" {
		t.Fatalf("got %q %v", v, ok)
	}
	if _, ok := r.Get("Website"); ok {
		t.Fatalf("missing key should not be found")
	}
}
