// Package matdata implements the StructureProvider port. Structures come
// either from a materials database API with a local disk cache, or from a
// directory of structure files for fully local runs.
package matdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/matsim/internal/core/ports"
	"go.trai.ch/zerr"
)

const httpClientTimeout = 30 * time.Second

// apiKeyHeader carries the API key on outgoing requests.
const apiKeyHeader = "X-API-Key"

// Client implements ports.StructureProvider against a materials database API.
// Fetched structures are cached on disk so repeated runs stay offline.
type Client struct {
	baseURL    string
	apiKey     string
	cacheDir   string
	httpClient *http.Client
	logger     ports.Logger
}

// NewClient creates a Client for the given source configuration.
func NewClient(source domain.SourceConfig, logger ports.Logger) (*Client, error) {
	return newClientWithCache(source, logger, domain.DefaultStructureCachePath(), &http.Client{
		Timeout: httpClientTimeout,
	})
}

// newClientWithCache creates a Client with a custom cache path and http
// client (used for testing).
func newClientWithCache(source domain.SourceConfig, logger ports.Logger, cacheDir string, client *http.Client) (*Client, error) {
	cleanDir := filepath.Clean(cacheDir)
	if err := os.MkdirAll(cleanDir, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheCreateFailed.Error())
	}

	return &Client{
		baseURL:    source.URL,
		apiKey:     source.APIKey,
		cacheDir:   cleanDir,
		httpClient: client,
		logger:     logger,
	}, nil
}

// GetStructure returns the structure for the identifier, from the disk cache
// when present and from the API otherwise.
func (c *Client) GetStructure(ctx context.Context, identifier string) (*domain.StructureRecord, error) {
	cachePath := c.cachePath(identifier)
	if record, err := loadCachedStructure(cachePath); err == nil {
		return record, nil
	}

	record, err := c.fetchStructure(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if err := c.saveToCache(cachePath, record); err != nil {
		c.logger.Warn(fmt.Sprintf("failed to cache structure %s: %v", identifier, err))
	}

	return record, nil
}

// GetProperties returns known properties for the identifier. Properties are
// not cached; they change as the database is curated.
func (c *Client) GetProperties(ctx context.Context, identifier string) (map[string]float64, error) {
	endpoint := c.endpoint("structures", identifier, "properties")

	body, err := c.get(ctx, endpoint, identifier, domain.ErrPropertiesNotFound)
	if err != nil {
		return nil, err
	}

	var properties map[string]float64
	if err := json.Unmarshal(body, &properties); err != nil {
		return nil, zerr.Wrap(err, "failed to parse properties response")
	}

	return properties, nil
}

func (c *Client) fetchStructure(ctx context.Context, identifier string) (*domain.StructureRecord, error) {
	endpoint := c.endpoint("structures", identifier)

	body, err := c.get(ctx, endpoint, identifier, domain.ErrStructureNotFound)
	if err != nil {
		return nil, err
	}

	var record domain.StructureRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, zerr.Wrap(err, "failed to parse structure response")
	}
	record.Identifier = identifier

	return &record, nil
}

func (c *Client) get(ctx context.Context, endpoint, identifier string, notFound error) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build request")
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "materials database unreachable"), "identifier", identifier)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, zerr.With(notFound, "identifier", identifier)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := zerr.With(notFound, "identifier", identifier)
		return nil, zerr.With(apiErr, "status_code", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read response body")
	}

	return body, nil
}

func (c *Client) endpoint(parts ...string) string {
	u := c.baseURL
	for _, p := range parts {
		u += "/" + url.PathEscape(p)
	}
	return u
}

func (c *Client) cachePath(identifier string) string {
	return filepath.Join(c.cacheDir, fmt.Sprintf("%016x.json", xxhash.Sum64String(identifier)))
}

func loadCachedStructure(path string) (*domain.StructureRecord, error) {
	//nolint:gosec // path is built from the cache dir and a hashed filename
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrCacheReadFailed
		}
		return nil, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}

	var record domain.StructureRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheCorrupt.Error())
	}

	return &record, nil
}

func (c *Client) saveToCache(path string, record *domain.StructureRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	tmpFile, err := os.CreateTemp(c.cacheDir, ".structure-*.tmp")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}

	return os.Rename(tmpName, path)
}
