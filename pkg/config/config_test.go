package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_SourcesConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("PUBMED_URL", "http://test-pubmed:9000/eutils")
	os.Setenv("SOURCE_TIMEOUT_SECONDS", "3")
	defer func() {
		os.Unsetenv("PUBMED_URL")
		os.Unsetenv("SOURCE_TIMEOUT_SECONDS")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify sources config
	assert.Equal(t, "http://test-pubmed:9000/eutils", cfg.Sources.PubMedURL)
	assert.Equal(t, 3, cfg.Sources.TimeoutSeconds)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("PUBMED_URL")
	os.Unsetenv("OPENAI_MODEL")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, "https://eutils.ncbi.nlm.nih.gov/entrez/eutils", cfg.Sources.PubMedURL)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, "ai_nurse_florence", cfg.Database.Database)
}
