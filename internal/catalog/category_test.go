package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	assert.Equal(t, 10, c.Len())

	cat, ok := c.BySlug("model-kits")
	require.True(t, ok)
	assert.Equal(t, "Model Kits", cat.Name)
	assert.Equal(t, MediaIcon, cat.Media.Kind)

	cat, ok = c.BySlug("action-figure")
	require.True(t, ok)
	assert.Equal(t, MediaImage, cat.Media.Kind)

	_, ok = c.BySlug("does-not-exist")
	assert.False(t, ok)
}

func TestNewSkipsDuplicateAndBlankSlugs(t *testing.T) {
	c := New([]Category{
		{Name: "A", Slug: "a"},
		{Name: "A again", Slug: "a"},
		{Name: "nameless"},
		{Name: "B", Slug: "b"},
	})

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "A", all[0].Name)
	assert.Equal(t, "B", all[1].Name)
}

func TestAllReturnsCopy(t *testing.T) {
	c := Default()
	all := c.All()
	all[0].Name = "mutated"

	cat, _ := c.BySlug(all[0].Slug)
	assert.Equal(t, "Action Figure", cat.Name)
}

func TestHeroFallback(t *testing.T) {
	assert.Equal(t, defaultHeroImage, Category{}.Hero())
	assert.Equal(t, "x.png", Category{HeroImage: "x.png"}.Hero())
}

func TestTagsByPrefix(t *testing.T) {
	assert.Len(t, TagsByPrefix(""), len(Tags))
	assert.Equal(t, []string{"Master Grade", "High Grade", "Real Grade", "Perfect Grade"}, TagsByPrefix("grade"))
	assert.Equal(t, []string{"Gundam"}, TagsByPrefix("GUND"))
	assert.Empty(t, TagsByPrefix("zzz"))
}
