// internal/config/taxonomy.go

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"trendwatch/internal/domain/trend"
)

// LoadTaxonomy reads the category -> keywords mapping from a YAML file.
// Categories keep document order, which is what makes first-match
// categorization stable across runs. A missing or malformed file falls
// back to a small built-in taxonomy so the pipeline can always run.
func LoadTaxonomy(path string) trend.Taxonomy {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultTaxonomy()
	}

	taxonomy, err := ParseTaxonomy(data)
	if err != nil || len(taxonomy) == 0 {
		return defaultTaxonomy()
	}

	return taxonomy
}

// ParseTaxonomy decodes a taxonomy document of the form:
//
//	categories:
//	  seo: [seo, ranking]
//	  ecommerce: [shopify, checkout]
//
// Decoding goes through yaml.Node instead of a map so category order
// survives the round trip.
func ParseTaxonomy(data []byte) (trend.Taxonomy, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing taxonomy: %w", err)
	}

	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty taxonomy document")
	}

	root := doc.Content[0]
	var categories *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "categories" {
			categories = root.Content[i+1]
			break
		}
	}
	if categories == nil {
		return nil, fmt.Errorf("taxonomy missing categories mapping")
	}

	var taxonomy trend.Taxonomy
	for i := 0; i+1 < len(categories.Content); i += 2 {
		name := categories.Content[i].Value
		var keywords []string
		if err := categories.Content[i+1].Decode(&keywords); err != nil {
			return nil, fmt.Errorf("decoding category %q: %w", name, err)
		}
		taxonomy = append(taxonomy, trend.Category{Name: name, Keywords: keywords})
	}

	return taxonomy, nil
}

func defaultTaxonomy() trend.Taxonomy {
	return trend.Taxonomy{
		{
			Name:     "general",
			Keywords: []string{"marketing", "seo", "content", "ads", "social", "video", "influencer", "ai"},
		},
	}
}
