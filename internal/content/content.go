// Package content renders the widget's informational panels from local
// markdown documents with YAML front matter.
package content

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// ErrNotFound reports a slug with no backing document.
var ErrNotFound = errors.New("content: not found")

const frontMatterDelim = "---"

// Page is a rendered informational document.
type Page struct {
	Slug      string
	Title     string
	Summary   string
	HTML      template.HTML
	Version   string
	UpdatedAt time.Time
}

// ETag returns a strong validator derived from the rendered body.
func (p Page) ETag() string {
	sum := sha256.Sum256([]byte(p.HTML))
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}

type frontMatter struct {
	Title     string `yaml:"title"`
	Summary   string `yaml:"summary"`
	Version   string `yaml:"version"`
	UpdatedAt string `yaml:"updated_at"`
}

type cacheEntry struct {
	page    Page
	expires time.Time
}

// Source renders pages from a filesystem, caching results briefly so the
// widget page can request the panel per render without re-parsing.
type Source struct {
	fsys fs.FS

	mu    sync.RWMutex
	items map[string]cacheEntry
	ttl   time.Duration

	md       goldmark.Markdown
	sanitize *bluemonday.Policy
}

// NewSource builds a Source over fsys. Documents live at "<slug>.md".
func NewSource(fsys fs.FS) *Source {
	return &Source{
		fsys:     fsys,
		items:    map[string]cacheEntry{},
		ttl:      5 * time.Minute,
		md:       goldmark.New(),
		sanitize: bluemonday.UGCPolicy(),
	}
}

// SetCacheDuration overrides the in-memory cache TTL (primarily for tests).
func (s *Source) SetCacheDuration(d time.Duration) {
	if d <= 0 {
		d = time.Minute
	}
	s.mu.Lock()
	s.ttl = d
	s.items = map[string]cacheEntry{}
	s.mu.Unlock()
}

// Page loads, renders, and sanitizes the document for slug.
func (s *Source) Page(slug string) (Page, error) {
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}

	s.mu.RLock()
	if e, ok := s.items[slug]; ok && time.Now().Before(e.expires) {
		s.mu.RUnlock()
		return e.page, nil
	}
	s.mu.RUnlock()

	raw, err := fs.ReadFile(s.fsys, slug+".md")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, ErrNotFound
		}
		return Page{}, fmt.Errorf("content: read %s: %w", slug, err)
	}

	fm, body, err := splitFrontMatter(raw)
	if err != nil {
		return Page{}, fmt.Errorf("content: front matter %s: %w", slug, err)
	}

	var rendered bytes.Buffer
	if err := s.md.Convert(body, &rendered); err != nil {
		return Page{}, fmt.Errorf("content: render %s: %w", slug, err)
	}

	page := Page{
		Slug:      slug,
		Title:     fm.Title,
		Summary:   fm.Summary,
		Version:   fm.Version,
		UpdatedAt: parseDate(fm.UpdatedAt),
		HTML:      template.HTML(s.sanitize.SanitizeBytes(rendered.Bytes())),
	}

	s.mu.Lock()
	s.items[slug] = cacheEntry{page: page, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return page, nil
}

func splitFrontMatter(raw []byte) (frontMatter, []byte, error) {
	var fm frontMatter
	text := string(raw)
	if !strings.HasPrefix(text, frontMatterDelim) {
		return fm, raw, nil
	}
	rest := text[len(frontMatterDelim):]
	idx := strings.Index(rest, "\n"+frontMatterDelim)
	if idx < 0 {
		return fm, raw, errors.New("unterminated front matter")
	}
	head := rest[:idx]
	body := rest[idx+len(frontMatterDelim)+1:]
	if err := yaml.Unmarshal([]byte(head), &fm); err != nil {
		return fm, nil, err
	}
	return fm, []byte(strings.TrimLeft(body, "\r\n")), nil
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func sanitizeSlug(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	var b strings.Builder
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
