package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx/types"
	"gopkg.in/yaml.v3"

	"relocation_quest/internal/domain"
)

// DestinationSeed is one entry of a destinations file. Structured sections
// are free-form and stored as JSON.
type DestinationSeed struct {
	Slug            string  `yaml:"slug" validate:"required"`
	CountryName     string  `yaml:"country_name" validate:"required"`
	Flag            *string `yaml:"flag"`
	Region          *string `yaml:"region"`
	Language        *string `yaml:"language"`
	HeroTitle       *string `yaml:"hero_title"`
	HeroSubtitle    *string `yaml:"hero_subtitle"`
	HeroGradient    *string `yaml:"hero_gradient"`
	HeroImageURL    *string `yaml:"hero_image_url" validate:"omitempty,url"`
	Enabled         *bool   `yaml:"enabled"`
	Featured        bool    `yaml:"featured"`
	Priority        int     `yaml:"priority" validate:"gte=0"`
	QuickFacts      any     `yaml:"quick_facts"`
	Highlights      any     `yaml:"highlights"`
	Visas           any     `yaml:"visas"`
	CostOfLiving    any     `yaml:"cost_of_living"`
	JobMarket       any     `yaml:"job_market"`
	FAQs            any     `yaml:"faqs"`
	MetaTitle       *string `yaml:"meta_title"`
	MetaDescription *string `yaml:"meta_description"`
}

type seedFile struct {
	Destinations []DestinationSeed `yaml:"destinations" validate:"dive"`
}

type SeedStats struct {
	Inserted int
	Updated  int
}

// LoadDestinations reads and validates a destinations file. Slugs must be
// unique within the file.
func LoadDestinations(path string) ([]domain.Destination, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read destinations file: %w", err)
	}
	return ParseDestinations(data)
}

func ParseDestinations(data []byte) ([]domain.Destination, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse destinations: %w", err)
	}

	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("validate destinations: %w: %s", domain.ErrInvalidArgument, err.Error())
	}

	seen := make(map[string]struct{}, len(file.Destinations))
	destinations := make([]domain.Destination, 0, len(file.Destinations))
	for _, seed := range file.Destinations {
		slug := strings.ToLower(strings.TrimSpace(seed.Slug))
		if _, dup := seen[slug]; dup {
			return nil, fmt.Errorf("duplicate destination %q: %w", slug, domain.ErrInvalidArgument)
		}
		seen[slug] = struct{}{}

		d, err := seed.toDomain(slug)
		if err != nil {
			return nil, err
		}
		destinations = append(destinations, d)
	}

	return destinations, nil
}

func (s DestinationSeed) toDomain(slug string) (domain.Destination, error) {
	d := domain.Destination{
		DestinationSummary: domain.DestinationSummary{
			Slug:            slug,
			CountryName:     s.CountryName,
			Flag:            s.Flag,
			Region:          s.Region,
			HeroTitle:       s.HeroTitle,
			HeroSubtitle:    s.HeroSubtitle,
			HeroImageURL:    s.HeroImageURL,
			MetaDescription: s.MetaDescription,
		},
		HeroGradient: s.HeroGradient,
		Language:     s.Language,
		Enabled:      s.Enabled == nil || *s.Enabled,
		Featured:     s.Featured,
		Priority:     s.Priority,
		MetaTitle:    s.MetaTitle,
	}

	sections := []struct {
		name  string
		value any
		dest  *types.JSONText
	}{
		{"quick_facts", s.QuickFacts, &d.QuickFacts},
		{"highlights", s.Highlights, &d.Highlights},
		{"visas", s.Visas, &d.Visas},
		{"cost_of_living", s.CostOfLiving, &d.CostOfLiving},
		{"job_market", s.JobMarket, &d.JobMarket},
		{"faqs", s.FAQs, &d.FAQs},
	}
	for _, sec := range sections {
		if sec.value == nil {
			continue
		}
		raw, err := json.Marshal(sec.value)
		if err != nil {
			return domain.Destination{}, fmt.Errorf("encode %s of %q: %w", sec.name, slug, err)
		}
		*sec.dest = types.JSONText(raw)
	}

	return d, nil
}

type Seeder struct {
	destinations DestinationStore
	txManager    TransactionManager
	logger       *slog.Logger
}

func NewSeeder(destinations DestinationStore, txManager TransactionManager, logger *slog.Logger) *Seeder {
	return &Seeder{
		destinations: destinations,
		txManager:    txManager,
		logger:       logger.With("component", "seeder"),
	}
}

// Seed upserts every destination in a single transaction. Any failure
// rolls the whole batch back.
func (s *Seeder) Seed(ctx context.Context, destinations []domain.Destination) (*SeedStats, error) {
	stats := &SeedStats{}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for i := range destinations {
			result, err := s.destinations.Upsert(txCtx, &destinations[i])
			if err != nil {
				return fmt.Errorf("seed destination %q: %w", destinations[i].Slug, err)
			}
			if result == domain.UpsertInserted {
				stats.Inserted++
			} else {
				stats.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("destinations seeded", "inserted", stats.Inserted, "updated", stats.Updated)
	return stats, nil
}
