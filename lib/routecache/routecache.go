package routecache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"

	"github.com/titanous/json5"
)

// Cache remembers which destinations are served from each origin, so
// pairs without any trips are only probed once.
//
// An origin that is present with no destinations is known to serve nothing,
// an absent origin has not been probed yet.
type Cache struct {
	mutex  sync.Mutex
	path   string
	routes map[string][]string
}

func New(path string) *Cache {
	return &Cache{path: path, routes: map[string][]string{}}
}

// Load reads the cache at `path`, a missing file yields an empty cache.
func Load(path string) (*Cache, error) {
	cache := New(path)
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cache, nil
	}
	if err != nil {
		return nil, err
	}
	err = json5.Unmarshal(contents, &cache.routes)
	if err != nil {
		return nil, err
	}
	if cache.routes == nil {
		cache.routes = map[string][]string{}
	}
	return cache, nil
}

func (c *Cache) Path() string {
	return c.path
}

// Known reports whether the origin has been probed.
func (c *Cache) Known(origin string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	_, ok := c.routes[origin]
	return ok
}

func (c *Cache) Destinations(origin string) []string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return slices.Clone(c.routes[origin])
}

// Valid reports whether a route is known to have trips.
func (c *Cache) Valid(origin, destination string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return slices.Contains(c.routes[origin], destination)
}

// Set replaces the destinations of an origin.
func (c *Cache) Set(origin string, destinations []string) {
	sorted := slices.Clone(destinations)
	if sorted == nil {
		sorted = []string{}
	}
	sort.Strings(sorted)
	sorted = slices.Compact(sorted)

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.routes[origin] = sorted
}

// Origins returns the probed origins in sorted order.
func (c *Cache) Origins() []string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	origins := make([]string, 0, len(c.routes))
	for origin := range c.routes {
		origins = append(origins, origin)
	}
	sort.Strings(origins)
	return origins
}

// Save writes the cache to its path atomically.
func (c *Cache) Save() error {
	c.mutex.Lock()
	contents, err := json.MarshalIndent(c.routes, "", "  ")
	c.mutex.Unlock()
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.path)
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	_, err = tmp.Write(contents)
	if err != nil {
		tmp.Close()
		return err
	}
	err = tmp.Close()
	if err != nil {
		return err
	}
	return os.Rename(tmp.Name(), c.path)
}
