// Package structured maps site data to schema.org JSON-LD values and provides
// the small formatting helpers page templates use next to them.
package structured

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

const schemaOrg = "https://schema.org/"

// OpeningHoursEntry is one day of opening hours as written in site data.
type OpeningHoursEntry struct {
	Day   string `yaml:"day" json:"day"`
	Open  string `yaml:"open" json:"open"`
	Close string `yaml:"close" json:"close"`
}

// OpeningHoursSpecification is the schema.org form of an OpeningHoursEntry.
type OpeningHoursSpecification struct {
	Type      string `json:"@type"`
	DayOfWeek string `json:"dayOfWeek"`
	Opens     string `json:"opens"`
	Closes    string `json:"closes"`
}

// OpeningHours maps entries one to one, keeping their order.
func OpeningHours(entries []OpeningHoursEntry) []OpeningHoursSpecification {
	out := make([]OpeningHoursSpecification, 0, len(entries))
	for _, e := range entries {
		out = append(out, OpeningHoursSpecification{
			Type:      "OpeningHoursSpecification",
			DayOfWeek: schemaOrg + e.Day,
			Opens:     e.Open,
			Closes:    e.Close,
		})
	}
	return out
}

// ReviewEntry is a customer review as written in site data.
type ReviewEntry struct {
	Author  string  `yaml:"author" json:"author"`
	Rating  float64 `yaml:"rating" json:"rating"`
	Excerpt string  `yaml:"excerpt" json:"excerpt"`
	Source  string  `yaml:"source" json:"source"`
	URL     *string `yaml:"url,omitempty" json:"url,omitempty"`
}

// Review is a schema.org Review.
type Review struct {
	Type          string  `json:"@type"`
	DatePublished string  `json:"datePublished"`
	ReviewRating  Rating  `json:"reviewRating"`
	Author        Thing   `json:"author"`
	ReviewBody    string  `json:"reviewBody"`
	Publisher     Thing   `json:"publisher"`
	URL           *string `json:"url,omitempty"`
}

// Rating is a schema.org Rating on a one to five scale.
type Rating struct {
	Type        string  `json:"@type"`
	RatingValue float64 `json:"ratingValue"`
	BestRating  int     `json:"bestRating"`
	WorstRating int     `json:"worstRating"`
}

// Thing is a named schema.org Person or Organization.
type Thing struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// Reviews maps entries one to one. Every review is dated with the day of now.
func Reviews(entries []ReviewEntry, now time.Time) []Review {
	date := now.Format(time.DateOnly)
	out := make([]Review, 0, len(entries))
	for _, e := range entries {
		out = append(out, Review{
			Type:          "Review",
			DatePublished: date,
			ReviewRating: Rating{
				Type:        "Rating",
				RatingValue: e.Rating,
				BestRating:  5,
				WorstRating: 1,
			},
			Author:     Thing{Type: "Person", Name: e.Author},
			ReviewBody: e.Excerpt,
			Publisher:  Thing{Type: "Organization", Name: e.Source},
			URL:        e.URL,
		})
	}
	return out
}

// Stars renders a rating as that many ★, rounded to the nearest integer.
func Stars(rating float64) string {
	n := int(math.Round(rating))
	if n < 0 {
		n = 0
	}
	return strings.Repeat("★", n)
}

// Tel strips everything but '+' and digits, for tel: links.
func Tel(input string) string {
	return strings.Map(func(r rune) rune {
		if r == '+' || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, input)
}

// CurrentYear returns the year of now.
func CurrentYear(now time.Time) int {
	return now.Year()
}

// JSON encodes v for embedding in a <script type="application/ld+json"> block.
func JSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
