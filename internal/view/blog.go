package view

import (
	"regexp"
	"strings"

	"storefront/internal/models"
)

const (
	placeholderBlogImage = "https://placehold.co/400x300/E0F2E9/333333?text=Blog"
	maxCardTags          = 3
)

var youtubeID = regexp.MustCompile(`^.*(youtu.be\/|v\/|u\/\w\/|embed\/|watch\?v=|&v=)([^#&?]*).*`)

type BlogCardView struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Category string   `json:"category,omitempty"`
	ImageURL string   `json:"image_url"`
	IsVideo  bool     `json:"is_video"`
	Tags     []string `json:"tags"`
	Date     string   `json:"date,omitempty"`
	Link     string   `json:"link"`
}

type BlogPreviewView struct {
	Visible bool           `json:"visible"`
	Posts   []BlogCardView `json:"posts"`
	MoreURL string         `json:"more_url"`
}

// YouTubeThumbnail returns the medium-quality thumbnail of a YouTube link,
// or "" when the link carries no 11 character video id.
func YouTubeThumbnail(link string) string {
	m := youtubeID.FindStringSubmatch(link)
	if len(m) < 3 || len(m[2]) != 11 {
		return ""
	}
	return "https://img.youtube.com/vi/" + m[2] + "/mqdefault.jpg"
}

// BlogCard links to the post on the public blog site at publicURL.
func BlogCard(p models.BlogPost, publicURL string) BlogCardView {
	v := BlogCardView{
		Slug:     p.Slug,
		Title:    p.Title,
		Category: p.CategoryName,
		Tags:     []string{},
		Link:     strings.TrimRight(publicURL, "/") + "/blogs/" + p.Slug,
	}

	switch thumb := YouTubeThumbnail(p.YoutubeLink); {
	case thumb != "":
		v.ImageURL = thumb
		v.IsVideo = true
	case p.ImagePath != "":
		v.ImageURL = p.ImagePath
	default:
		v.ImageURL = placeholderBlogImage
	}

	tags := p.Tags
	if len(tags) > maxCardTags {
		tags = tags[:maxCardTags]
	}
	v.Tags = append(v.Tags, tags...)

	if t, ok := parseDate(p.PublishedAt); ok {
		v.Date = ShortDate(t)
	}
	return v
}

// BlogPreview hides itself when there is nothing to show.
func BlogPreview(posts []models.BlogPost, publicURL string) BlogPreviewView {
	v := BlogPreviewView{
		Visible: len(posts) > 0,
		Posts:   make([]BlogCardView, 0, len(posts)),
		MoreURL: strings.TrimRight(publicURL, "/") + "/blogs",
	}
	for _, p := range posts {
		v.Posts = append(v.Posts, BlogCard(p, publicURL))
	}
	return v
}

type BlogPageView struct {
	Posts      []BlogCardView `json:"posts"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Total      int64          `json:"total"`
	Empty      bool           `json:"empty"`
}

func BlogPage(page *models.BlogPage, publicURL string) BlogPageView {
	v := BlogPageView{
		Posts:      make([]BlogCardView, 0, len(page.Content)),
		Page:       page.Number,
		TotalPages: page.TotalPages,
		Total:      page.TotalElements,
		Empty:      len(page.Content) == 0,
	}
	for _, p := range page.Content {
		v.Posts = append(v.Posts, BlogCard(p, publicURL))
	}
	return v
}
