package audit

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"relocation_quest/internal/audit/mocks"
	"relocation_quest/internal/domain"
	"relocation_quest/internal/testutil"
)

type AuditorTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	source *mocks.MockCatalog
	target *mocks.MockCatalog

	v1      Instance
	v2      Instance
	auditor *Auditor
}

func (s *AuditorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.source = mocks.NewMockCatalog(s.ctrl)
	s.target = mocks.NewMockCatalog(s.ctrl)

	s.v1 = Instance{
		Name:      "V1",
		Catalog:   s.source,
		Partition: domain.Partition{Column: "app", Value: "relocation"},
	}
	s.v2 = Instance{Name: "V2", Catalog: s.target}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.auditor = NewAuditor(logger)
}

func (s *AuditorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuditorTestSuite(t *testing.T) {
	suite.Run(t, new(AuditorTestSuite))
}

func (s *AuditorTestSuite) TestAuditTables_ContinuesPastMissingTable() {
	ctx := context.Background()

	s.target.EXPECT().Tables(ctx).Return([]domain.TableInfo{
		{Name: "articles", Type: "BASE TABLE"},
	}, nil)
	s.target.EXPECT().CountRows(ctx, "articles").Return(int64(42), nil)
	s.target.EXPECT().CountRows(ctx, "jobs").Return(int64(0), errors.New(`relation "jobs" does not exist`))
	s.target.EXPECT().CountRows(ctx, "destinations").Return(int64(7), nil)

	report := s.auditor.AuditTables(ctx, s.v2, []string{"articles", "jobs", "destinations"})

	s.Equal("V2", report.Instance)
	s.Empty(report.ListErr)
	s.Len(report.Tables, 1)
	s.Require().Len(report.Counts, 3)
	s.Equal(domain.TableCount{Name: "articles", Rows: 42, Found: true}, report.Counts[0])
	s.False(report.Counts[1].Found)
	s.Contains(report.Counts[1].Err, "does not exist")
	s.Equal(int64(7), report.Counts[2].Rows)
}

func (s *AuditorTestSuite) TestAuditTables_ListFailureStillCounts() {
	ctx := context.Background()

	s.target.EXPECT().Tables(ctx).Return(nil, errors.New("permission denied"))
	s.target.EXPECT().CountRows(ctx, "articles").Return(int64(3), nil)

	report := s.auditor.AuditTables(ctx, s.v2, []string{"articles"})

	s.Equal("permission denied", report.ListErr)
	s.True(report.Counts[0].Found)
}

func (s *AuditorTestSuite) TestAuditColumns_EmptyIsNotFound() {
	ctx := context.Background()

	s.source.EXPECT().Columns(ctx, "articles").Return([]domain.ColumnInfo{
		{Name: "id", DataType: "integer"},
		{Name: "slug", DataType: "text", Nullable: true},
	}, nil)
	s.source.EXPECT().Columns(ctx, "companies").Return([]domain.ColumnInfo{}, nil)
	s.source.EXPECT().Columns(ctx, "jobs").Return(nil, errors.New("timeout"))

	report := s.auditor.AuditColumns(ctx, s.v1, []string{"articles", "companies", "jobs"})

	s.Require().Len(report.Tables, 3)
	s.True(report.Tables[0].Found())
	s.Len(report.Tables[0].Columns, 2)
	s.False(report.Tables[1].Found())
	s.Empty(report.Tables[1].Err)
	s.False(report.Tables[2].Found())
	s.Equal("timeout", report.Tables[2].Err)
}

func (s *AuditorTestSuite) TestCheckParity() {
	ctx := context.Background()

	s.source.EXPECT().ArticleKeys(ctx, s.v1.Partition).Return([]domain.ArticleKey{
		{Slug: "a", Title: "A"},
		{Slug: "b", Title: "B", Country: testutil.Ptr("Spain")},
		{Slug: "c", Title: "C"},
	}, nil)
	s.target.EXPECT().ArticleKeys(ctx, domain.Partition{}).Return([]domain.ArticleKey{
		{Slug: "a", Title: "A renamed"},
		{Slug: "d", Title: "D"},
	}, nil)

	report := s.auditor.CheckParity(ctx, s.v1, s.v2)

	s.Empty(report.Err)
	s.Equal(3, report.SourceCount)
	s.Equal(2, report.TargetCount)
	s.Equal([]string{"b", "c"}, slugs(report.MissingInTarget))
	s.Equal([]string{"d"}, slugs(report.ExtraInTarget))
	s.False(report.InSync())
}

func (s *AuditorTestSuite) TestCheckParity_SourceError() {
	ctx := context.Background()

	s.source.EXPECT().ArticleKeys(ctx, s.v1.Partition).Return(nil, errors.New("connection refused"))

	report := s.auditor.CheckParity(ctx, s.v1, s.v2)

	s.Equal("V1: connection refused", report.Err)
	s.False(report.InSync())
}

func (s *AuditorTestSuite) TestCheckCoverage() {
	ctx := context.Background()

	s.target.EXPECT().CountArticlesMentioning(ctx, "Portugal").Return(int64(12), nil)
	s.target.EXPECT().CountArticlesMentioning(ctx, "Malta").Return(int64(0), nil)
	s.target.EXPECT().CountArticlesMentioning(ctx, "Bali").Return(int64(0), errors.New("boom"))

	report := s.auditor.CheckCoverage(ctx, s.v2, []string{"Portugal", "Malta", "Bali"})

	s.Require().Len(report.Entries, 3)
	s.Equal(int64(12), report.Entries[0].Articles)
	s.Equal([]string{"Malta"}, report.Gaps())
	s.Equal("boom", report.Entries[2].Err)
}

func (s *AuditorTestSuite) TestBreakdown() {
	ctx := context.Background()

	s.source.EXPECT().ArticleKeys(ctx, s.v1.Partition).Return([]domain.ArticleKey{{Slug: "a"}, {Slug: "b"}}, nil)
	s.source.EXPECT().ArticleBreakdown(ctx, DimensionArticleMode, s.v1.Partition, 0).Return([]domain.BreakdownRow{
		{Value: testutil.Ptr("guide"), Count: 1},
		{Value: nil, Count: 1},
	}, nil)
	s.source.EXPECT().ArticleBreakdown(ctx, DimensionCountry, s.v1.Partition, 15).Return(nil, errors.New("column missing"))

	report := s.auditor.Breakdown(ctx, s.v1)

	s.Equal(int64(2), report.Total)
	s.Require().Len(report.Breakdowns, 2)
	s.Len(report.Breakdowns[0].Rows, 2)
	s.Equal("column missing", report.Breakdowns[1].Err)
}

func (s *AuditorTestSuite) TestDiscover() {
	ctx := context.Background()
	keywords := []string{"visa", "expat"}

	s.source.EXPECT().PartitionCounts(ctx, "app").Return([]domain.BreakdownRow{
		{Value: testutil.Ptr("relocation"), Count: 40},
		{Value: testutil.Ptr("fractional"), Count: 12},
	}, nil)
	s.source.EXPECT().ArticlesMatching(ctx, keywords).Return([]domain.ArticleKey{
		{Slug: "golden-visa-greece", Title: "Golden Visa Greece"},
		{Slug: "expat-tax", Title: "Expat Tax"},
		{Slug: "cyprus-guide", Title: "Cyprus", Country: testutil.Ptr("Cyprus")},
	}, nil)
	s.target.EXPECT().ArticleKeys(ctx, domain.Partition{}).Return([]domain.ArticleKey{
		{Slug: "expat-tax"},
		{Slug: "only-in-target"},
	}, nil)

	report := s.auditor.Discover(ctx, s.v1, s.v2, keywords)

	s.Empty(report.Err)
	s.Equal("app", report.Partition)
	s.Len(report.ByPartition, 2)
	s.Len(report.Candidates, 3)
	s.Equal([]string{"golden-visa-greece", "cyprus-guide"}, slugs(report.Missing))
}

func (s *AuditorTestSuite) TestDiscover_PartitionFailureStillSearches() {
	ctx := context.Background()

	s.source.EXPECT().PartitionCounts(ctx, "app").Return(nil, errors.New(`column "app" does not exist`))
	s.source.EXPECT().ArticlesMatching(ctx, nil).Return([]domain.ArticleKey{{Slug: "a"}}, nil)
	s.target.EXPECT().ArticleKeys(ctx, domain.Partition{}).Return(nil, errors.New("timeout"))

	report := s.auditor.Discover(ctx, s.v1, s.v2, nil)

	s.Contains(report.PartitionErr, "does not exist")
	s.Equal("V2: timeout", report.Err)
	s.Empty(report.Missing)
}

func slugs(keys []domain.ArticleKey) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.Slug)
	}
	return out
}

func TestDiffKeys(t *testing.T) {
	tests := []struct {
		name        string
		source      []domain.ArticleKey
		target      []domain.ArticleKey
		wantMissing []string
		wantExtra   []string
	}{
		{
			name:        "both empty",
			wantMissing: []string{},
			wantExtra:   []string{},
		},
		{
			name:        "identical",
			source:      []domain.ArticleKey{{Slug: "x"}, {Slug: "y"}},
			target:      []domain.ArticleKey{{Slug: "y"}, {Slug: "x"}},
			wantMissing: []string{},
			wantExtra:   []string{},
		},
		{
			name:        "title differences ignored",
			source:      []domain.ArticleKey{{Slug: "x", Title: "old"}},
			target:      []domain.ArticleKey{{Slug: "x", Title: "new"}},
			wantMissing: []string{},
			wantExtra:   []string{},
		},
		{
			name:        "overlapping",
			source:      []domain.ArticleKey{{Slug: "a"}, {Slug: "b"}, {Slug: "c"}},
			target:      []domain.ArticleKey{{Slug: "b"}, {Slug: "c"}, {Slug: "d"}},
			wantMissing: []string{"a"},
			wantExtra:   []string{"d"},
		},
		{
			name:        "disjoint",
			source:      []domain.ArticleKey{{Slug: "a"}, {Slug: "b"}},
			target:      []domain.ArticleKey{{Slug: "c"}},
			wantMissing: []string{"a", "b"},
			wantExtra:   []string{"c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			missing, extra := DiffKeys(tt.source, tt.target)
			if got := slugs(missing); !equalStrings(got, tt.wantMissing) {
				t.Errorf("missing = %v, want %v", got, tt.wantMissing)
			}
			if got := slugs(extra); !equalStrings(got, tt.wantExtra) {
				t.Errorf("extra = %v, want %v", got, tt.wantExtra)
			}
		})
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
