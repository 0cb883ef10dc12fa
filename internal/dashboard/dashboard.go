package dashboard

import (
	"context"
	"log/slog"

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/alphios72/NewsinsightUI/internal/permission"
)

// Source tables whose row counts feed the overview chart.
var sourceTables = []struct {
	Table string
	Label string
}{
	{"rss_feed_url", "RSS Feed URL"},
	{"url", "URL"},
	{"fonti_europee", "Fonti Europee"},
	{"rss_europee", "RSS Europee"},
}

// articleTable backs the headline article counter.
const articleTable = "article_db"

type SourceCount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type WordCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type Stats struct {
	ArticleCount int64         `json:"article_count"`
	Sources      []SourceCount `json:"sources"`
	WordCloud    []WordCount   `json:"word_cloud"`
}

// RepositoryAPI reads the aggregate inputs of the overview page.
type RepositoryAPI interface {
	CountRows(ctx context.Context, tableName string) (int64, error)
	RelevantDescriptions(ctx context.Context) ([]string, error)
}

// TableLister validates table names against the live schema before any
// identifier reaches dynamic SQL.
type TableLister interface {
	HasTable(ctx context.Context, tableName string) (bool, error)
	ListTables(ctx context.Context) ([]string, error)
}

type AccessResolver interface {
	ResolveAccess(ctx context.Context, role internal.Role, tableName string) (permission.Access, error)
}

type Service struct {
	repo         RepositoryAPI
	introspector TableLister
	logger       *slog.Logger
}

func NewService(repo RepositoryAPI, introspector TableLister, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		introspector: introspector,
		logger:       logger,
	}
}

// Stats assembles the overview numbers. Tables absent from the live schema
// simply count as zero instead of failing the whole page.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	articleCount, err := s.countIfPresent(ctx, articleTable)
	if err != nil {
		return nil, err
	}
	stats.ArticleCount = articleCount

	for _, src := range sourceTables {
		count, err := s.countIfPresent(ctx, src.Table)
		if err != nil {
			return nil, err
		}
		stats.Sources = append(stats.Sources, SourceCount{Name: src.Label, Value: count})
	}

	descriptions, err := s.relevantDescriptions(ctx)
	if err != nil {
		return nil, err
	}
	stats.WordCloud = BuildWordCloud(descriptions, topWords)

	return stats, nil
}

func (s *Service) countIfPresent(ctx context.Context, tableName string) (int64, error) {
	ok, err := s.introspector.HasTable(ctx, tableName)
	if err != nil {
		return 0, err
	}
	if !ok {
		s.logger.Warn("overview table missing from schema", "table", tableName)
		return 0, nil
	}
	return s.repo.CountRows(ctx, tableName)
}

func (s *Service) relevantDescriptions(ctx context.Context) ([]string, error) {
	ok, err := s.introspector.HasTable(ctx, "relevant_or_not")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return s.repo.RelevantDescriptions(ctx)
}
