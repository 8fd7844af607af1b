// Package workshop fetches published-file metadata for workshop map
// references from the Steam Web API.
package workshop

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cs2kit/cs2kit/internal/cachemanager"
	"github.com/cs2kit/cs2kit/internal/config"
	"github.com/cs2kit/cs2kit/internal/log"
)

const detailsPath = "/ISteamRemoteStorage/GetPublishedFileDetails/v1/"

// Details is the metadata kept for one workshop item.
type Details struct {
	ID          string
	Title       string
	PreviewURL  string
	FileSize    int64
	TimeUpdated time.Time
}

// Client queries the Steam Web API for workshop item details. Responses are
// cached per ID with the configured TTL, so repeated lookups (watch mode,
// repeated listing runs) stay off the network.
type Client struct {
	base  string
	http  *http.Client
	cache cachemanager.CacheManager[string, Details]
	ttl   time.Duration
	limit int
}

// New creates a workshop client from the workshop configuration.
func New(cfg config.WorkshopConfig) *Client {
	return &Client{
		base:  strings.TrimRight(cfg.APIBase, "/"),
		http:  &http.Client{Timeout: cfg.Timeout},
		cache: cachemanager.NewInMemoryCacheManager[string, Details]("workshop", cfg.CacheTTL, cachemanager.DefaultCleanupInterval),
		ttl:   cfg.CacheTTL,
		limit: cfg.Concurrency,
	}
}

// Details returns metadata for a single workshop ID.
func (c *Client) Details(ctx context.Context, id string) (Details, error) {
	if d, ok := c.cache.Get(ctx, id); ok {
		return d, nil
	}

	d, err := c.fetch(ctx, id)
	if err != nil {
		return Details{}, err
	}

	c.cache.Set(ctx, id, d, c.ttl)
	return d, nil
}

// BatchDetails resolves metadata for every given ID, fetching cache misses
// with bounded concurrency. It returns only once every lookup has finished;
// the first failure cancels the remaining fetches and is returned.
func (c *Client) BatchDetails(ctx context.Context, ids []string) (map[string]Details, error) {
	logger := log.WithComponent("workshop")

	out := make(map[string]Details, len(ids))
	var missing []string

	if cached, ok := c.cache.GetMultiple(ctx, ids); ok {
		for id, d := range cached {
			out[id] = d
		}
	}
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			missing = append(missing, id)
		}
	}

	logger.Debug().
		Int("total", len(ids)).
		Int("cached", len(out)).
		Int("fetching", len(missing)).
		Msg("resolving workshop details")

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)

	for _, id := range missing {
		g.Go(func() error {
			d, err := c.fetch(gctx, id)
			if err != nil {
				return err
			}
			c.cache.Set(gctx, id, d, c.ttl)
			mu.Lock()
			out[id] = d
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) fetch(ctx context.Context, id string) (Details, error) {
	form := url.Values{
		"itemcount":           {"1"},
		"publishedfileids[0]": {id},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+detailsPath, strings.NewReader(form.Encode()))
	if err != nil {
		return Details{}, fmt.Errorf("building workshop request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.http.Do(req)
	if err != nil {
		return Details{}, fmt.Errorf("fetching workshop item %s: %w", id, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Details{}, fmt.Errorf("fetching workshop item %s: unexpected status %d", id, res.StatusCode)
	}

	var p struct {
		Response struct {
			Result               int `json:"result"`
			PublishedFileDetails []struct {
				PublishedFileID string `json:"publishedfileid"`
				Result          int    `json:"result"`
				Title           string `json:"title"`
				PreviewURL      string `json:"preview_url"`
				FileSize        int64  `json:"file_size,string"`
				TimeUpdated     int64  `json:"time_updated"`
			} `json:"publishedfiledetails"`
		} `json:"response"`
	}
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		return Details{}, fmt.Errorf("decoding workshop item %s: %w", id, err)
	}

	if len(p.Response.PublishedFileDetails) == 0 {
		return Details{}, fmt.Errorf("workshop item %s: empty response", id)
	}
	d := p.Response.PublishedFileDetails[0]
	if d.Result != 1 {
		return Details{}, fmt.Errorf("workshop item %s: api result %d", id, d.Result)
	}

	return Details{
		ID:          d.PublishedFileID,
		Title:       d.Title,
		PreviewURL:  d.PreviewURL,
		FileSize:    d.FileSize,
		TimeUpdated: time.Unix(d.TimeUpdated, 0).UTC(),
	}, nil
}
