package domain

import "time"

// Article is a row of the articles table. List queries fill only the
// summary columns, the rest stay nil and are omitted from JSON.
type Article struct {
	ID           string     `db:"id" json:"id"`
	Slug         string     `db:"slug" json:"slug"`
	Title        string     `db:"title" json:"title"`
	Content      *string    `db:"content" json:"content,omitempty"`
	Excerpt      *string    `db:"excerpt" json:"excerpt"`
	HeroImageURL *string    `db:"hero_image_url" json:"hero_image_url"`
	ArticleMode  *string    `db:"article_mode" json:"article_mode,omitempty"`
	Country      *string    `db:"country" json:"country,omitempty"`
	Category     *string    `db:"category" json:"category,omitempty"`
	IsFeatured   *bool      `db:"is_featured" json:"is_featured,omitempty"`
	PublishedAt  *time.Time `db:"published_at" json:"published_at,omitempty"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

type ArticlePage struct {
	Articles []Article `json:"articles"`
	Total    int64     `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}

// ContentRef is the minimal projection used to build sitemap entries.
type ContentRef struct {
	Slug      string     `db:"slug"`
	UpdatedAt *time.Time `db:"updated_at"`
}

// UpsertResult reports what an idempotent write did to the target row.
type UpsertResult int

const (
	UpsertUnchanged UpsertResult = iota
	UpsertInserted
	UpsertUpdated
)

func (r UpsertResult) String() string {
	switch r {
	case UpsertInserted:
		return "inserted"
	case UpsertUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}
