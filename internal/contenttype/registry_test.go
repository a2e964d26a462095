package contenttype

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGet(t *testing.T) {
	r := NewRegistry(ContentType{UID: "api::products.products", CollectionName: "products", Localized: true})

	ct, err := r.Get("api::products.products")
	require.NoError(t, err)
	assert.Equal(t, "products", ct.CollectionName)
	assert.True(t, ct.Localized)
}

func TestRegistryGetUnknownUID(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("api::deleted.deleted")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"api::deleted.deleted"`)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content-types.json")
	data := `[
		{"uid": "api::products.products", "collectionName": "products", "localized": true},
		{"uid": "api::articles.articles", "collectionName": "articles"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	r, err := Load(path)
	require.NoError(t, err)

	ct, err := r.Get("api::articles.articles")
	require.NoError(t, err)
	assert.Equal(t, "articles", ct.CollectionName)
	assert.False(t, ct.Localized)
}

func TestLoadRejectsIncompleteEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content-types.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"uid": "api::broken.broken"}]`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
