// Package catalog holds the storefront's category and tag vocabulary.
package catalog

import (
	"strings"
)

// MediaKind tags how a category is pictured.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaIcon  MediaKind = "icon"
)

// Media is either an image URL or a named icon, fixed when the category is
// defined.
type Media struct {
	Kind  MediaKind `json:"kind"`
	Value string    `json:"value"`
}

func Image(url string) Media { return Media{Kind: MediaImage, Value: url} }

func Icon(name string) Media { return Media{Kind: MediaIcon, Value: name} }

type Category struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Media       Media  `json:"media"`
	HeroImage   string `json:"hero_image"`
	Description string `json:"description"`
}

const defaultHeroImage = "https://placehold.co/600x400/93c5fd/374151?text=Kategori"

// Hero returns the hero banner image, falling back to a placeholder.
func (c Category) Hero() string {
	if c.HeroImage == "" {
		return defaultHeroImage
	}
	return c.HeroImage
}

// Catalog is an immutable, ordered set of categories.
type Catalog struct {
	categories []Category
	bySlug     map[string]Category
}

// New builds a catalog; later duplicates of a slug are ignored.
func New(categories []Category) *Catalog {
	c := &Catalog{bySlug: make(map[string]Category, len(categories))}
	for _, cat := range categories {
		if _, dup := c.bySlug[cat.Slug]; dup || cat.Slug == "" {
			continue
		}
		c.categories = append(c.categories, cat)
		c.bySlug[cat.Slug] = cat
	}
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(DefaultCategories)
}

// All returns the categories in display order.
func (c *Catalog) All() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

func (c *Catalog) BySlug(slug string) (Category, bool) {
	cat, ok := c.bySlug[slug]
	return cat, ok
}

func (c *Catalog) Len() int {
	return len(c.categories)
}

// TagsByPrefix returns the tags containing prefix, case-insensitively. An
// empty prefix returns every tag.
func TagsByPrefix(prefix string) []string {
	if prefix == "" {
		out := make([]string, len(Tags))
		copy(out, Tags)
		return out
	}

	needle := strings.ToLower(prefix)
	out := []string{}
	for _, tag := range Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			out = append(out, tag)
		}
	}
	return out
}
