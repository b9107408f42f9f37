package dto

import "time"

// HomeResponse aggregates public landing page counters and a random
// sample of blog posts.
type HomeResponse struct {
	Count             int64              `json:"count"`
	Client            int64              `json:"client"`
	ActiveNewsletters int64              `json:"active_newsletters"`
	RandomBlogs       []BlogPostResponse `json:"random_blogs"`
}

// ContactRequest represents a submitted contact form. Fields carry no
// validation tags; submissions are logged as received, never rejected.
type ContactRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ContactResponse acknowledges a contact form submission
type ContactResponse struct {
	Message string `json:"message"`
}

// GetBlogPostRequest represents the request to read a single blog post
type GetBlogPostRequest struct {
	UUID string `json:"-"`
}

// BlogPostResponse represents a blog post in API responses
type BlogPostResponse struct {
	UUID      string    `json:"uuid"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	ViewCount int64     `json:"view_count"`
	CreatedAt time.Time `json:"created_at"`
}
