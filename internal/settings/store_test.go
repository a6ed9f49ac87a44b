package settings_test

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirov/llm-recipes/internal/settings"
)

const storageDirectory = "/home/chef/.llm-recipes"

func TestOpenWritesDefaultDocument(t *testing.T) {
	filesystem := afero.NewMemMapFs()
	store, err := settings.Open(filesystem, storageDirectory, nil)
	require.NoError(t, err)

	content, err := afero.ReadFile(filesystem, store.Path())
	require.NoError(t, err)

	var document map[string]any
	require.NoError(t, json.Unmarshal(content, &document))
	assert.Equal(t, "dark", document["theme"])
	assert.Equal(t, true, document["save_recipes"])
	assert.EqualValues(t, 10, document["recipe_history_size"])
	apiSettings, ok := document["api_settings"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "gpt-4", apiSettings["model"])

	assert.Equal(t, "gpt-4", store.GetString(settings.KeyModel, "fallback"))
	assert.InDelta(t, 0.7, store.GetFloat64(settings.KeyTemperature, 0), 1e-9)
	assert.Equal(t, 2000, store.GetInt(settings.KeyMaxTokens, 0))
	assert.True(t, store.GetBool(settings.KeySaveRecipes, false))
	assert.False(t, store.GetBool(settings.KeyHasAPIKey, true))
}

func TestMissingKeysReturnFallback(t *testing.T) {
	store, err := settings.Open(afero.NewMemMapFs(), storageDirectory, nil)
	require.NoError(t, err)

	assert.Equal(t, "x", store.GetString("api_settings.unknown", "x"))
	assert.Equal(t, 7, store.GetInt("nope", 7))
	assert.InDelta(t, 1.5, store.GetFloat64("nope.deeper", 1.5), 1e-9)
	assert.True(t, store.GetBool("missing", true))
	_, found := store.Get("missing")
	assert.False(t, found)
}

func TestSetPersistsAcrossOpen(t *testing.T) {
	filesystem := afero.NewMemMapFs()
	store, err := settings.Open(filesystem, storageDirectory, nil)
	require.NoError(t, err)

	require.NoError(t, store.Set(settings.KeyModel, "gpt-4o"))
	require.NoError(t, store.Set(settings.KeyHistorySize, 3))

	reopened, err := settings.Open(filesystem, storageDirectory, nil)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", reopened.GetString(settings.KeyModel, ""))
	assert.Equal(t, 3, reopened.GetInt(settings.KeyHistorySize, 0))
	assert.InDelta(t, 0.7, reopened.GetFloat64(settings.KeyTemperature, 0), 1e-9)
}

func TestCorruptFileIsReplacedWithDefaults(t *testing.T) {
	filesystem := afero.NewMemMapFs()
	require.NoError(t, filesystem.MkdirAll(storageDirectory, 0o755))
	path := storageDirectory + "/" + settings.FileName
	require.NoError(t, afero.WriteFile(filesystem, path, []byte("{not json"), 0o600))

	store, err := settings.Open(filesystem, storageDirectory, nil)
	require.NoError(t, err)
	assert.Equal(t, "dark", store.GetString(settings.KeyTheme, ""))
	assert.Equal(t, 4, store.GetInt(settings.KeyDefaultServings, 0))
}

func TestSetRejectsEmptyKey(t *testing.T) {
	store, err := settings.Open(afero.NewMemMapFs(), storageDirectory, nil)
	require.NoError(t, err)
	require.Error(t, store.Set("", "x"))
}
