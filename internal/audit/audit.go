// Package audit compares content between two database instances and
// renders the findings. It never knows which physical database an
// Instance points at.
package audit

import (
	"context"
	"log/slog"

	"relocation_quest/internal/domain"
)

const (
	DimensionArticleMode = "article_mode"
	DimensionCountry     = "country"

	countryBreakdownLimit = 15
)

// Instance is a named database under audit. Partition narrows shared
// tables to this site's rows and is zero for a dedicated database.
type Instance struct {
	Name      string
	Catalog   Catalog
	Partition domain.Partition
}

type TableAudit struct {
	Instance string
	Tables   []domain.TableInfo
	ListErr  string
	Counts   []domain.TableCount
}

type TableColumns struct {
	Table   string
	Columns []domain.ColumnInfo
	Err     string
}

func (t TableColumns) Found() bool {
	return t.Err == "" && len(t.Columns) > 0
}

type ColumnAudit struct {
	Instance string
	Tables   []TableColumns
}

type ParityReport struct {
	Source          string
	Target          string
	SourceCount     int
	TargetCount     int
	MissingInTarget []domain.ArticleKey
	ExtraInTarget   []domain.ArticleKey
	Err             string
}

func (p ParityReport) InSync() bool {
	return p.Err == "" && len(p.MissingInTarget) == 0 && len(p.ExtraInTarget) == 0
}

type CoverageEntry struct {
	Destination string
	Articles    int64
	Err         string
}

// Gap reports a destination with no matching articles. Failed lookups are
// not gaps.
func (e CoverageEntry) Gap() bool {
	return e.Err == "" && e.Articles == 0
}

type CoverageReport struct {
	Instance string
	Entries  []CoverageEntry
}

func (r CoverageReport) Gaps() []string {
	var gaps []string
	for _, e := range r.Entries {
		if e.Gap() {
			gaps = append(gaps, e.Destination)
		}
	}
	return gaps
}

type Breakdown struct {
	Dimension string
	Rows      []domain.BreakdownRow
	Err       string
}

type BreakdownReport struct {
	Instance   string
	Total      int64
	Breakdowns []Breakdown
	Err        string
}

// DiscoveryReport lists source articles that look like this site's
// content by keyword, whatever partition they sit in, and which of them the
// target still lacks.
type DiscoveryReport struct {
	Source       string
	Target       string
	Candidates   []domain.ArticleKey
	Missing      []domain.ArticleKey
	Err          string
	Partition    string
	ByPartition  []domain.BreakdownRow
	PartitionErr string
}

// Auditor runs read-only checks. Every check records its own failure
// inline and the run continues with the next one.
type Auditor struct {
	logger *slog.Logger
}

func NewAuditor(logger *slog.Logger) *Auditor {
	return &Auditor{logger: logger.With("component", "audit")}
}

func (a *Auditor) AuditTables(ctx context.Context, inst Instance, tables []string) TableAudit {
	report := TableAudit{Instance: inst.Name}

	listed, err := inst.Catalog.Tables(ctx)
	if err != nil {
		a.logger.Warn("list tables failed", "instance", inst.Name, "error", err)
		report.ListErr = err.Error()
	} else {
		report.Tables = listed
	}

	for _, table := range tables {
		count := domain.TableCount{Name: table}
		rows, err := inst.Catalog.CountRows(ctx, table)
		if err != nil {
			a.logger.Debug("count rows failed", "instance", inst.Name, "table", table, "error", err)
			count.Err = err.Error()
		} else {
			count.Rows = rows
			count.Found = true
		}
		report.Counts = append(report.Counts, count)
	}

	return report
}

func (a *Auditor) AuditColumns(ctx context.Context, inst Instance, tables []string) ColumnAudit {
	report := ColumnAudit{Instance: inst.Name}

	for _, table := range tables {
		entry := TableColumns{Table: table}
		columns, err := inst.Catalog.Columns(ctx, table)
		if err != nil {
			a.logger.Warn("list columns failed", "instance", inst.Name, "table", table, "error", err)
			entry.Err = err.Error()
		} else {
			entry.Columns = columns
		}
		report.Tables = append(report.Tables, entry)
	}

	return report
}

func (a *Auditor) CheckParity(ctx context.Context, source, target Instance) ParityReport {
	report := ParityReport{Source: source.Name, Target: target.Name}

	sourceKeys, err := source.Catalog.ArticleKeys(ctx, source.Partition)
	if err != nil {
		report.Err = source.Name + ": " + err.Error()
		return report
	}
	targetKeys, err := target.Catalog.ArticleKeys(ctx, target.Partition)
	if err != nil {
		report.Err = target.Name + ": " + err.Error()
		return report
	}

	report.SourceCount = len(sourceKeys)
	report.TargetCount = len(targetKeys)
	report.MissingInTarget, report.ExtraInTarget = DiffKeys(sourceKeys, targetKeys)

	a.logger.Info("parity checked",
		"source", source.Name,
		"target", target.Name,
		"missing", len(report.MissingInTarget),
		"extra", len(report.ExtraInTarget),
	)

	return report
}

func (a *Auditor) CheckCoverage(ctx context.Context, inst Instance, destinations []string) CoverageReport {
	report := CoverageReport{Instance: inst.Name}

	for _, name := range destinations {
		entry := CoverageEntry{Destination: name}
		count, err := inst.Catalog.CountArticlesMentioning(ctx, name)
		if err != nil {
			entry.Err = err.Error()
		} else {
			entry.Articles = count
		}
		report.Entries = append(report.Entries, entry)
	}

	return report
}

func (a *Auditor) Breakdown(ctx context.Context, inst Instance) BreakdownReport {
	report := BreakdownReport{Instance: inst.Name}

	keys, err := inst.Catalog.ArticleKeys(ctx, inst.Partition)
	if err != nil {
		report.Err = err.Error()
	} else {
		report.Total = int64(len(keys))
	}

	for _, dim := range []struct {
		name  string
		limit int
	}{
		{DimensionArticleMode, 0},
		{DimensionCountry, countryBreakdownLimit},
	} {
		b := Breakdown{Dimension: dim.name}
		rows, err := inst.Catalog.ArticleBreakdown(ctx, dim.name, inst.Partition, dim.limit)
		if err != nil {
			b.Err = err.Error()
		} else {
			b.Rows = rows
		}
		report.Breakdowns = append(report.Breakdowns, b)
	}

	return report
}

// Discover finds keyword-matching source articles absent from the target.
// The per-partition counts show where the candidates actually live.
func (a *Auditor) Discover(ctx context.Context, source, target Instance, keywords []string) DiscoveryReport {
	report := DiscoveryReport{Source: source.Name, Target: target.Name}

	if column := source.Partition.Column; column != "" {
		report.Partition = column
		rows, err := source.Catalog.PartitionCounts(ctx, column)
		if err != nil {
			report.PartitionErr = err.Error()
		} else {
			report.ByPartition = rows
		}
	}

	candidates, err := source.Catalog.ArticlesMatching(ctx, keywords)
	if err != nil {
		report.Err = source.Name + ": " + err.Error()
		return report
	}
	report.Candidates = candidates

	targetKeys, err := target.Catalog.ArticleKeys(ctx, target.Partition)
	if err != nil {
		report.Err = target.Name + ": " + err.Error()
		return report
	}
	report.Missing, _ = DiffKeys(candidates, targetKeys)

	a.logger.Info("discovery finished",
		"source", source.Name,
		"candidates", len(report.Candidates),
		"missing", len(report.Missing),
	)

	return report
}
