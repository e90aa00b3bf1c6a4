package models

import (
	"time"

	"storefront/internal/pricing"
)

// Product as served by the products service
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Discount    int    `json:"discount"`
	Stock       int    `json:"stock"`
	Type        string `json:"type"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
}

// CartItem is one line of the customer's cart. Price is the unit price
// captured by the cart service.
type CartItem struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	Note        string `json:"description,omitempty"`
}

func (i CartItem) LineUnitPrice() int64 { return i.Price }
func (i CartItem) LineQuantity() int { return i.Quantity }

// Cart holds only its items; aggregates are derived on read.
type Cart struct {
	Items []CartItem `json:"items"`
}

// TotalItems is the badge counter: the sum of quantities.
func (c Cart) TotalItems() int {
	return pricing.TotalItems(c.Items)
}

func (c Cart) Subtotal() int64 {
	return pricing.Subtotal(c.Items)
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Order header; only Status ever changes after creation.
type Order struct {
	ID         int64       `json:"id"`
	Status     OrderStatus `json:"status"`
	TotalPrice int64       `json:"total_price"`
	CreatedAt  time.Time   `json:"created_at"`
}

// OrderItem is a purchase-time snapshot of a product line.
type OrderItem struct {
	ID           int64  `json:"id"`
	ProductName  string `json:"product_name"`
	ProductPrice int64  `json:"product_price"`
	SellerName   string `json:"seller_name"`
	Quantity     int    `json:"quantity"`
}

func (i OrderItem) LineUnitPrice() int64 { return i.ProductPrice }
func (i OrderItem) LineQuantity() int { return i.Quantity }

// OrderWithItems is the shape of one entry of the order history.
type OrderWithItems struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials posted to the accounts service
type Credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult is what the accounts service returns on a successful login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Session is the storefront's record of an authenticated customer.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// BlogPost as returned by the blog service
type BlogPost struct {
	ID           int64    `json:"id"`
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Content      string   `json:"content,omitempty"`
	ImagePath    string   `json:"imagePath,omitempty"`
	YoutubeLink  string   `json:"youtubeLink,omitempty"`
	CategoryName string   `json:"categoryName,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	PublishedAt  string   `json:"publishedAt,omitempty"`
}

// BlogPage is the blog service's paged listing payload.
type BlogPage struct {
	Content       []BlogPost `json:"content"`
	Number        int        `json:"number"`
	Size          int        `json:"size"`
	TotalElements int64      `json:"totalElements"`
	TotalPages    int        `json:"totalPages"`
}

type BlogCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type BlogTag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
