package web

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// Visited tracks crawled URLs so repeated runs only fetch new pages.
type Visited struct {
	seen map[string]bool
}

// LoadVisited reads the visited-URL state file, a JSON list of URLs.
// A missing or unreadable file starts a fresh crawl.
func LoadVisited(path string) *Visited {
	v := &Visited{seen: make(map[string]bool)}
	data, err := os.ReadFile(path)
	if err != nil {
		return v
	}
	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return v
	}
	for _, u := range urls {
		v.seen[u] = true
	}
	return v
}

// Seen reports whether the URL was fetched before.
func (v *Visited) Seen(url string) bool { return v.seen[url] }

// Add marks a URL as fetched.
func (v *Visited) Add(url string) { v.seen[url] = true }

// Len returns the number of tracked URLs.
func (v *Visited) Len() int { return len(v.seen) }

// Save persists the visited URLs as a sorted JSON list.
func (v *Visited) Save(path string) error {
	urls := make([]string, 0, len(v.seen))
	for u := range v.seen {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	data, err := json.MarshalIndent(urls, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
