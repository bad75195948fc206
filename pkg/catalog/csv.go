package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Recognized header aliases. Column matching is case-sensitive for the
// French alias, matching the web importer this replaces.
var (
	titleColumns = []string{"title", "Titre"}
	imageColumns = []string{"imageUrl", "image", "image_url"}
	tagSeparator = regexp.MustCompile(`[,;\s]+`)
)

// ImportCSV parses a product catalog from CSV. The first record is the
// header. Rows lacking a resolvable image URL are dropped; ids are 1-based
// row ordinals.
func ImportCSV(r io.Reader) ([]Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	index := func(names ...string) int {
		for _, name := range names {
			for i, col := range header {
				if strings.TrimSpace(col) == name {
					return i
				}
			}
		}
		return -1
	}

	titleIdx := index(titleColumns...)
	priceIdx := index("price")
	imageIdx := index(imageColumns...)
	descIdx := index("description")
	tagsIdx := index("tags")

	field := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var products []Product
	for i, row := range records[1:] {
		imageURL := field(row, imageIdx)
		if imageURL == "" {
			continue
		}

		title := field(row, titleIdx)
		if title == "" {
			title = "Produit"
		}

		p := Product{
			ID:          strconv.Itoa(i + 1),
			Title:       title,
			Price:       field(row, priceIdx),
			ImageURL:    imageURL,
			Description: field(row, descIdx),
			Tags:        splitTags(field(row, tagsIdx)),
		}
		products = append(products, WithCaption(p))
	}

	return products, nil
}

// splitTags splits a tag cell on commas, semicolons and whitespace,
// discarding empty entries.
func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range tagSeparator.Split(s, -1) {
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
