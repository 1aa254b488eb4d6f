package migration

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"relocation_quest/internal/domain"
	"relocation_quest/internal/migration/mocks"
)

func TestLoadDestinations(t *testing.T) {
	destinations, err := LoadDestinations(filepath.Join("testdata", "destinations.yaml"))
	require.NoError(t, err)
	require.Len(t, destinations, 2)

	cyprus := destinations[0]
	assert.Equal(t, "cyprus", cyprus.Slug)
	assert.Equal(t, "Cyprus", cyprus.CountryName)
	assert.True(t, cyprus.Enabled)
	assert.True(t, cyprus.Featured)
	assert.Equal(t, 90, cyprus.Priority)
	assert.JSONEq(t, `{"capital":"Nicosia","currency":"EUR"}`, string(cyprus.QuickFacts))
	assert.JSONEq(t, `[{"question":"Is English spoken?","answer":"Widely."}]`, string(cyprus.FAQs))
	assert.Empty(t, cyprus.Visas)

	malta := destinations[1]
	assert.False(t, malta.Enabled)
	assert.JSONEq(t, `["Sunshine","English-speaking"]`, string(malta.Highlights))
}

func TestParseDestinations_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "missing country name",
			data: "destinations:\n  - slug: spain\n",
		},
		{
			name: "duplicate slug",
			data: "destinations:\n  - slug: spain\n    country_name: Spain\n  - slug: Spain\n    country_name: Spain again\n",
		},
		{
			name: "bad image url",
			data: "destinations:\n  - slug: spain\n    country_name: Spain\n    hero_image_url: not a url\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDestinations([]byte(tt.data))
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestParseDestinations_Malformed(t *testing.T) {
	_, err := ParseDestinations([]byte("destinations: [unterminated"))
	assert.ErrorContains(t, err, "parse destinations")
}

type SeederTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	destinations *mocks.MockDestinationStore
	txManager    *mocks.MockTransactionManager
	seeder       *Seeder
}

func (s *SeederTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.destinations = mocks.NewMockDestinationStore(s.ctrl)
	s.txManager = mocks.NewMockTransactionManager(s.ctrl)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.seeder = NewSeeder(s.destinations, s.txManager, logger)

	s.txManager.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		}).AnyTimes()
}

func (s *SeederTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSeederTestSuite(t *testing.T) {
	suite.Run(t, new(SeederTestSuite))
}

func (s *SeederTestSuite) TestSeed() {
	ctx := context.Background()
	batch := []domain.Destination{
		{DestinationSummary: domain.DestinationSummary{Slug: "cyprus", CountryName: "Cyprus"}},
		{DestinationSummary: domain.DestinationSummary{Slug: "malta", CountryName: "Malta"}},
	}

	gomock.InOrder(
		s.destinations.EXPECT().Upsert(ctx, &batch[0]).Return(domain.UpsertInserted, nil),
		s.destinations.EXPECT().Upsert(ctx, &batch[1]).Return(domain.UpsertUpdated, nil),
	)

	stats, err := s.seeder.Seed(ctx, batch)

	s.Require().NoError(err)
	s.Equal(&SeedStats{Inserted: 1, Updated: 1}, stats)
}

func (s *SeederTestSuite) TestSeed_StopsOnFirstError() {
	ctx := context.Background()
	batch := []domain.Destination{
		{DestinationSummary: domain.DestinationSummary{Slug: "cyprus"}},
		{DestinationSummary: domain.DestinationSummary{Slug: "malta"}},
	}

	s.destinations.EXPECT().Upsert(ctx, &batch[0]).Return(domain.UpsertUnchanged, errors.New("check violation"))

	stats, err := s.seeder.Seed(ctx, batch)

	s.Nil(stats)
	s.ErrorContains(err, `seed destination "cyprus"`)
}
