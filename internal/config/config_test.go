package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "SERVER_PORT", "DB_PATH", "MOCK_MODE", "MOCK_COUNT",
		"INGEST_DEFAULT_DAYS", "INGEST_FETCH_LIMIT", "KEYWORDS_PATH",
		"REPORTS_DIR", "GEO", "X_BEARER_TOKEN",
	} {
		t.Setenv(key, "")
	}

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "data/db.sqlite3", config.Storage.Path)
	assert.True(t, config.Ingest.MockMode)
	assert.Equal(t, 80, config.Ingest.MockCount)
	assert.Equal(t, 7, config.Ingest.DefaultDays)
	assert.Equal(t, 200, config.Ingest.FetchLimit)
	assert.Equal(t, "config/keywords.yaml", config.Ingest.KeywordsPath)
	assert.Equal(t, "reports", config.Report.Dir)
	assert.Equal(t, "IN", config.Sources.Geo)
	assert.Empty(t, config.Sources.XBearerToken)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MOCK_MODE", "false")
	t.Setenv("GEO", "US")
	t.Setenv("SERVER_CORS_ORIGINS", "https://a.example,https://b.example")

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Server.Port)
	assert.False(t, config.Ingest.MockMode)
	assert.Equal(t, "US", config.Sources.Geo)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, config.Server.CorsOrigins)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("MOCK_MODE", "maybe")

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, config.Server.Port)
	assert.True(t, config.Ingest.MockMode)
}

func TestParseTaxonomy_PreservesDocumentOrder(t *testing.T) {
	doc := []byte(`
categories:
  zeta: [one]
  alpha: [two, three]
  mid: [four]
`)
	taxonomy, err := ParseTaxonomy(doc)
	require.NoError(t, err)
	require.Len(t, taxonomy, 3)

	assert.Equal(t, "zeta", taxonomy[0].Name)
	assert.Equal(t, "alpha", taxonomy[1].Name)
	assert.Equal(t, "mid", taxonomy[2].Name)
	assert.Equal(t, []string{"two", "three"}, taxonomy[1].Keywords)
}

func TestParseTaxonomy_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing categories key", "other: [a]"},
		{"empty document", ""},
		{"scalar category value", "categories:\n  seo: 42"},
		{"invalid yaml", "categories: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTaxonomy([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadTaxonomy_FallsBackOnMissingFile(t *testing.T) {
	taxonomy := LoadTaxonomy(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NotEmpty(t, taxonomy)
	assert.Equal(t, "general", taxonomy[0].Name)
}

func TestLoadTaxonomy_FallsBackOnMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0o644))

	taxonomy := LoadTaxonomy(path)
	require.NotEmpty(t, taxonomy)
	assert.Equal(t, "general", taxonomy[0].Name)
}

func TestLoadTaxonomy_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	doc := []byte("categories:\n  seo: [seo, serp]\n  ecommerce: [shopify]\n")
	require.NoError(t, os.WriteFile(path, doc, 0o644))

	taxonomy := LoadTaxonomy(path)
	require.Len(t, taxonomy, 2)
	assert.Equal(t, "seo", taxonomy[0].Name)
	assert.Equal(t, []string{"shopify"}, taxonomy[1].Keywords)
}
