package catalog

// Sample returns the built-in demo catalog, matching the sample CSV bundled
// with the original web importer.
func Sample() []Product {
	products := []Product{
		{
			ID:          "demo-1",
			Title:       "Bouteille isotherme 500ml",
			Price:       "24.90",
			ImageURL:    "https://images.unsplash.com/photo-1517433670267-08bbd4be890f?q=80&w=1080&auto=format&fit=crop",
			Description: "Garde au chaud jusqu'à 12h",
			Tags:        []string{"tiktokshop", "vitrine", "boisson"},
		},
		{
			ID:          "demo-2",
			Title:       "Support téléphone pliable",
			Price:       "14.90",
			ImageURL:    "https://images.unsplash.com/photo-1590540179793-05cbd1aab9d3?q=80&w=1080&auto=format&fit=crop",
			Description: "Compact et solide",
			Tags:        []string{"mobile", "stand", "utiles"},
		},
	}

	for i, p := range products {
		products[i] = WithCaption(p)
	}
	return products
}
