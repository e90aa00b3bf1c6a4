package view

import (
	"storefront/internal/backend"
	"storefront/internal/catalog"
	"storefront/internal/service"
)

type ListingView struct {
	State    service.ListingState `json:"state"`
	Products []ProductCardView    `json:"products"`
	Error    string               `json:"error,omitempty"`
}

func Listing(l service.Listing) ListingView {
	v := ListingView{State: l.State, Products: ProductCards(l.Products)}
	if l.State == service.ListingError {
		v.Error = backend.Message(l.Err)
	}
	return v
}

type CategoryView struct {
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Media       catalog.Media `json:"media"`
	HeroImage   string        `json:"hero_image"`
	Description string        `json:"description,omitempty"`
	Link        string        `json:"link"`
}

func Category(c catalog.Category) CategoryView {
	return CategoryView{
		Name:        c.Name,
		Slug:        c.Slug,
		Media:       c.Media,
		HeroImage:   c.Hero(),
		Description: c.Description,
		Link:        "/category/" + c.Slug,
	}
}

func Categories(cs []catalog.Category) []CategoryView {
	out := make([]CategoryView, 0, len(cs))
	for _, c := range cs {
		out = append(out, Category(c))
	}
	return out
}

type CategoryPageView struct {
	Category CategoryView `json:"category"`
	Listing  ListingView  `json:"listing"`
}

type SearchPageView struct {
	Query   string      `json:"query"`
	Listing ListingView `json:"listing"`
}

type HomeView struct {
	Categories []CategoryView  `json:"categories"`
	Products   ListingView     `json:"products"`
	Blog       BlogPreviewView `json:"blog"`
}
