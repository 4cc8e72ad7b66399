package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validKey is exactly the minimum accepted access key length.
var validKey = strings.Repeat("k", 64)

// writeSecrets populates a temp secret volume with one file per value.
func writeSecrets(t *testing.T, values map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, value := range values {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value), 0o600))
	}
	return dir
}

// validSecrets returns a complete, valid secret volume layout.
func validSecrets() map[string]string {
	return map[string]string{
		SecretCosmosURL:        "https://foo.documents.azure.com:443/",
		SecretCosmosKey:        validKey,
		SecretCosmosDatabase:   "imdb",
		SecretCosmosCollection: "movies",
	}
}

func TestLoadSecretBundle_Valid(t *testing.T) {
	dir := writeSecrets(t, validSecrets())

	bundle, err := LoadSecretBundle(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, bundle.SourceVolume)
	assert.Equal(t, "https://foo.documents.azure.com:443/", bundle.ServerURL)
	assert.Equal(t, validKey, bundle.AccessKey)
	assert.Equal(t, "imdb", bundle.Database)
	assert.Equal(t, "movies", bundle.Collection)
	assert.Equal(t, "foo", ServerDisplayName(bundle.ServerURL))
}

func TestLoadSecretBundle_TrimsWhitespace(t *testing.T) {
	secrets := validSecrets()
	secrets[SecretCosmosDatabase] = "  imdb\n"
	secrets[SecretCosmosURL] = "\thttps://foo.documents.azure.com:443/\n"
	dir := writeSecrets(t, secrets)

	bundle, err := LoadSecretBundle(dir)
	require.NoError(t, err)
	assert.Equal(t, "imdb", bundle.Database)
	assert.Equal(t, "https://foo.documents.azure.com:443/", bundle.ServerURL)
}

func TestLoadSecretBundle_EmptyVolumePath(t *testing.T) {
	for _, volume := range []string{"", "   "} {
		_, err := LoadSecretBundle(volume)
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr, "volume %q", volume)
	}
}

func TestLoadSecretBundle_MissingVolume(t *testing.T) {
	_, err := LoadSecretBundle(filepath.Join(t.TempDir(), "does-not-exist"))

	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Contains(t, confErr.Error(), "does not exist")
}

func TestLoadSecretBundle_VolumeIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := LoadSecretBundle(path)

	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
}

// A missing secret file coalesces to an empty value, and validation rejects
// it naming the field.
func TestLoadSecretBundle_MissingSecretFiles(t *testing.T) {
	for _, missing := range []string{
		SecretCosmosURL,
		SecretCosmosKey,
		SecretCosmosDatabase,
		SecretCosmosCollection,
	} {
		t.Run(missing, func(t *testing.T) {
			secrets := validSecrets()
			delete(secrets, missing)
			dir := writeSecrets(t, secrets)

			_, err := LoadSecretBundle(dir)

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, missing, valErr.Field)
		})
	}
}

// An empty or whitespace-only file fails the same way as a missing one.
func TestLoadSecretBundle_EmptySecretFile(t *testing.T) {
	secrets := validSecrets()
	secrets[SecretCosmosDatabase] = "   \n"
	dir := writeSecrets(t, secrets)

	_, err := LoadSecretBundle(dir)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, SecretCosmosDatabase, valErr.Field)
}

func TestLoadSecretBundle_URLValidation(t *testing.T) {
	tests := []struct {
		name string
		url  string
		ok   bool
	}{
		{"wrong scheme", "http://foo.documents.azure.com/", false},
		{"no scheme", "foo.documents.azure.com", false},
		{"missing domain suffix", "https://foo.example.com/", false},
		{"scheme case-insensitive", "HTTPS://foo.documents.azure.com:443/", true},
		{"suffix case-insensitive", "https://foo.DOCUMENTS.AZURE.COM:443/", true},
		{"valid", "https://foo.documents.azure.com:443/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secrets := validSecrets()
			secrets[SecretCosmosURL] = tt.url
			dir := writeSecrets(t, secrets)

			_, err := LoadSecretBundle(dir)
			if tt.ok {
				assert.NoError(t, err)
				return
			}

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, SecretCosmosURL, valErr.Field)
		})
	}
}

// The key length boundary is inclusive: 64 characters passes, 63 does not.
func TestLoadSecretBundle_KeyLengthBoundary(t *testing.T) {
	tests := []struct {
		name   string
		length int
		ok     bool
	}{
		{"one short", 63, false},
		{"exact minimum", 64, true},
		{"longer", 88, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secrets := validSecrets()
			secrets[SecretCosmosKey] = strings.Repeat("k", tt.length)
			dir := writeSecrets(t, secrets)

			_, err := LoadSecretBundle(dir)
			if tt.ok {
				assert.NoError(t, err)
				return
			}

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, SecretCosmosKey, valErr.Field)
		})
	}
}

// A secret that exists but cannot be read is a configuration error carrying
// the filename. A directory in place of the file triggers the read failure
// regardless of the user the tests run as.
func TestLoadSecretBundle_UnreadableSecretFile(t *testing.T) {
	secrets := validSecrets()
	delete(secrets, SecretCosmosKey)
	dir := writeSecrets(t, secrets)
	require.NoError(t, os.Mkdir(filepath.Join(dir, SecretCosmosKey), 0o700))

	_, err := LoadSecretBundle(dir)

	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
	assert.Contains(t, confErr.Path, SecretCosmosKey)
}

func TestInMemoryBundle(t *testing.T) {
	bundle := InMemoryBundle()

	assert.Equal(t, "imdb", bundle.Database)
	assert.Equal(t, "movies", bundle.Collection)
	assert.Empty(t, bundle.SourceVolume)
	assert.Contains(t, bundle.ServerURL, "in-memory")
	assert.Equal(t, "in-memory", bundle.AccessKey)
}

func TestServerDisplayName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://foo.documents.azure.com:443/", "foo"},
		{"https://somedb.documents.azure.com", "somedb"},
		{"https://in-memory", "in-memory"},
		{"HTTPS://Bar.documents.azure.com/", "Bar"},
		{"no-scheme.documents.azure.com", "no-scheme"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ServerDisplayName(tt.url), "url %q", tt.url)
	}
}

func TestValidationError_NamesField(t *testing.T) {
	err := &ValidationError{Field: SecretCosmosURL, Message: "server URL must use the https:// scheme"}
	assert.Contains(t, err.Error(), SecretCosmosURL)
}
