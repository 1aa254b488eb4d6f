package domain

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// DestinationSummary is the projection returned by the destination list.
type DestinationSummary struct {
	Slug            string         `db:"slug" json:"slug"`
	CountryName     string         `db:"country_name" json:"country_name"`
	Flag            *string        `db:"flag" json:"flag"`
	Region          *string        `db:"region" json:"region"`
	HeroTitle       *string        `db:"hero_title" json:"hero_title"`
	HeroSubtitle    *string        `db:"hero_subtitle" json:"hero_subtitle"`
	HeroImageURL    *string        `db:"hero_image_url" json:"hero_image_url"`
	MetaDescription *string        `db:"meta_description" json:"meta_description"`
	CostOfLiving    types.JSONText `db:"cost_of_living" json:"cost_of_living"`
}

type Destination struct {
	ID string `db:"id" json:"id"`
	DestinationSummary
	HeroGradient *string        `db:"hero_gradient" json:"hero_gradient"`
	Language     *string        `db:"language" json:"language"`
	Enabled      bool           `db:"enabled" json:"enabled"`
	Featured     bool           `db:"featured" json:"featured"`
	Priority     int            `db:"priority" json:"priority"`
	QuickFacts   types.JSONText `db:"quick_facts" json:"quick_facts"`
	Highlights   types.JSONText `db:"highlights" json:"highlights"`
	Visas        types.JSONText `db:"visas" json:"visas"`
	JobMarket    types.JSONText `db:"job_market" json:"job_market"`
	FAQs         types.JSONText `db:"faqs" json:"faqs"`
	MetaTitle    *string        `db:"meta_title" json:"meta_title"`
	UpdatedAt    *time.Time     `db:"updated_at" json:"updated_at,omitempty"`
}

type DestinationList struct {
	Destinations []DestinationSummary `json:"destinations"`
	Total        int                  `json:"total"`
}
