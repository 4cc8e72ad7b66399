package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Secret file names as mounted into the volume by the orchestrator, one value
// per file, plain text.
const (
	SecretCosmosCollection = "CosmosCollection"
	SecretCosmosDatabase   = "CosmosDatabase"
	SecretCosmosKey        = "CosmosKey"
	SecretCosmosURL        = "CosmosUrl"
)

const (
	// cosmosDomainSuffix identifies the managed-database service endpoint.
	cosmosDomainSuffix = ".documents.azure.com"

	// minAccessKeyLength is the minimum length of a Cosmos account key. The
	// key is otherwise opaque; 64 characters passes, 63 does not.
	minAccessKeyLength = 64
)

// SecretBundle holds the validated deployment secrets. It is created once
// during startup and read-only afterwards; no component mutates it.
type SecretBundle struct {
	// SourceVolume is the directory the bundle was loaded from. Empty when
	// the in-memory fixture is used.
	SourceVolume string

	// ServerURL is the Cosmos account endpoint (https, managed-database
	// domain).
	ServerURL string

	// AccessKey is the Cosmos account key.
	AccessKey string

	// Database and Collection name the movie catalog location.
	Database   string
	Collection string
}

// InMemoryBundle returns the fixture bundle used when the service runs without
// external dependencies. It never touches the filesystem and bypasses
// validation; the sentinel server and key are only ever used in log output.
func InMemoryBundle() *SecretBundle {
	return &SecretBundle{
		ServerURL:  "https://in-memory",
		AccessKey:  "in-memory",
		Database:   "imdb",
		Collection: "movies",
	}
}

// LoadSecretBundle reads the four secret files from volume, trims surrounding
// whitespace, and validates the result. A missing file coalesces to an empty
// value; validation rejects empty values uniformly, so absence and emptiness
// fail the same way. The returned bundle is fully valid or the error is
// non-nil - there is no partially valid state.
func LoadSecretBundle(volume string) (*SecretBundle, error) {
	if strings.TrimSpace(volume) == "" {
		return nil, &ConfigurationError{Path: volume, Reason: "secrets volume path is empty"}
	}

	info, err := os.Stat(volume)
	if err != nil {
		return nil, &ConfigurationError{Path: volume, Reason: "secrets volume does not exist", Err: err}
	}
	if !info.IsDir() {
		return nil, &ConfigurationError{Path: volume, Reason: "secrets volume is not a directory"}
	}

	bundle := &SecretBundle{SourceVolume: volume}
	for _, secret := range []struct {
		name string
		dst  *string
	}{
		{SecretCosmosCollection, &bundle.Collection},
		{SecretCosmosDatabase, &bundle.Database},
		{SecretCosmosKey, &bundle.AccessKey},
		{SecretCosmosURL, &bundle.ServerURL},
	} {
		value, err := readSecretFile(volume, secret.name)
		if err != nil {
			return nil, err
		}
		*secret.dst = value
	}

	if err := bundle.validate(); err != nil {
		return nil, err
	}
	return bundle, nil
}

// readSecretFile reads a single secret value. Absence is not an error at this
// stage; an unreadable existing file is, with the filename attached.
func readSecretFile(volume, name string) (string, error) {
	path := filepath.Join(volume, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", &ConfigurationError{Path: path, Reason: "secret file is not readable", Err: err}
	}
	return strings.TrimSpace(string(data)), nil
}

// validate enforces the shape of every secret. Errors name the offending
// field so a broken deployment fails fast with a usable message.
func (b *SecretBundle) validate() error {
	for _, required := range []struct {
		field string
		value string
	}{
		{SecretCosmosURL, b.ServerURL},
		{SecretCosmosKey, b.AccessKey},
		{SecretCosmosDatabase, b.Database},
		{SecretCosmosCollection, b.Collection},
	} {
		if strings.TrimSpace(required.value) == "" {
			return &ValidationError{Field: required.field, Message: "value is missing or empty"}
		}
	}

	lowerURL := strings.ToLower(b.ServerURL)
	if !strings.HasPrefix(lowerURL, "https://") {
		return &ValidationError{Field: SecretCosmosURL, Message: "server URL must use the https:// scheme"}
	}
	if !strings.Contains(lowerURL, cosmosDomainSuffix) {
		return &ValidationError{
			Field:   SecretCosmosURL,
			Message: fmt.Sprintf("server URL must contain the %s domain suffix", cosmosDomainSuffix),
		}
	}

	if len(b.AccessKey) < minAccessKeyLength {
		return &ValidationError{
			Field:   SecretCosmosKey,
			Message: fmt.Sprintf("access key must be at least %d characters", minAccessKeyLength),
		}
	}

	return nil
}

// ServerDisplayName derives a short name for the database server: the host
// portion of serverURL with the scheme removed and everything from the first
// dot onward truncated. "https://foo.documents.azure.com:443/" yields "foo".
// Callers use it for logging and to derive the Cosmos account name.
func ServerDisplayName(serverURL string) string {
	name := serverURL
	if idx := strings.Index(name, "://"); idx >= 0 {
		name = name[idx+len("://"):]
	}
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		name = name[:idx]
	}
	return strings.TrimSuffix(name, "/")
}
