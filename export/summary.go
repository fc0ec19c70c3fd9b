package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bgraf/trackheat/geotrack"
	"github.com/goodsign/monday"
	"gopkg.in/yaml.v2"
)

const dateLayout = "2 January 2006"

// Summary is a track summary with its date range rendered for people.
type Summary struct {
	geotrack.Summary `yaml:",inline"`
	Period           string `json:"period,omitempty" yaml:"period,omitempty"`
}

// ParseLocale resolves a locale name such as "de_DE". The empty string
// selects en_US.
func ParseLocale(name string) (monday.Locale, error) {
	if name == "" {
		return monday.LocaleEnUS, nil
	}

	for _, l := range monday.ListLocales() {
		if string(l) == name {
			return l, nil
		}
	}

	return "", fmt.Errorf("unsupported locale '%s'", name)
}

func Summaries(tracks []*geotrack.Track, locale monday.Locale) []Summary {
	out := make([]Summary, len(tracks))
	for i, t := range tracks {
		out[i] = Summary{
			Summary: t.Summary(),
			Period:  Period(t.DateRange().Ptr(), locale),
		}
	}
	return out
}

// Period formats a date range, collapsing it to one date when both ends fall
// on the same day. A nil range gives the empty string.
func Period(r *geotrack.DateRange, locale monday.Locale) string {
	if r == nil {
		return ""
	}

	from := monday.Format(r.Min.UTC(), dateLayout, locale)
	to := monday.Format(r.Max.UTC(), dateLayout, locale)
	if from == to {
		return from
	}

	return from + " - " + to
}

func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
