// Package catalog holds the product model, the CSV importer and the caption
// derivation used by the clip generator.
package catalog

import (
	"regexp"
	"strings"
)

// Product is one catalog entry. It is immutable once constructed for a
// given render.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       string   `json:"price,omitempty"`
	ImageURL    string   `json:"imageUrl"`
	Tags        []string `json:"tags,omitempty"`
	Caption     string   `json:"caption,omitempty"`
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// DeriveCaption builds the marketing caption for a product: the description
// (or the title when absent) followed by a hashtag line built from the tag
// set. Tags keep their order, are lower-cased and stripped of
// non-alphanumeric characters.
func DeriveCaption(p Product) string {
	base := p.Description
	if base == "" {
		base = p.Title
	}

	hashtags := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		cleaned := strings.ToLower(nonAlphanumeric.ReplaceAllString(tag, ""))
		hashtags = append(hashtags, "#"+cleaned)
	}

	return strings.TrimSpace(base + "\n" + strings.Join(hashtags, " "))
}

// WithCaption returns a copy of the product with its caption recomputed.
func WithCaption(p Product) Product {
	p.Caption = DeriveCaption(p)
	return p
}
