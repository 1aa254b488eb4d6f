package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"relocation_quest/internal/domain"
)

// Reference tables created on the target before their rows are copied.
// contact_submissions has no V1 counterpart; the contact form writes it.
const (
	TableCompanies          = "companies"
	TableJobs               = "jobs"
	TableSkills             = "skills"
	TableContactSubmissions = "contact_submissions"
)

var referenceDDL = map[string][]string{
	TableCompanies: {`
		CREATE TABLE IF NOT EXISTS companies (
			id SERIAL PRIMARY KEY,
			slug TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			headquarters TEXT,
			specializations TEXT[],
			overview TEXT,
			meta_description TEXT,
			website TEXT,
			logo_url TEXT,
			fee TEXT,
			featured BOOLEAN DEFAULT FALSE,
			highlights TEXT[],
			company_type TEXT,
			app TEXT DEFAULT 'relocation',
			status TEXT DEFAULT 'published',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
	},
	TableJobs: {`
		CREATE TABLE IF NOT EXISTS jobs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			slug TEXT UNIQUE,
			title TEXT NOT NULL,
			company_name TEXT,
			company_domain TEXT,
			location TEXT,
			is_remote BOOLEAN DEFAULT FALSE,
			is_fractional BOOLEAN DEFAULT FALSE,
			workplace_type TEXT,
			salary_min INTEGER,
			salary_max INTEGER,
			salary_currency TEXT DEFAULT 'GBP',
			compensation TEXT,
			posted_date TIMESTAMPTZ,
			url TEXT,
			description_snippet TEXT,
			role_category TEXT,
			skills_required TEXT[],
			is_active BOOLEAN DEFAULT TRUE,
			source TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_active ON jobs (is_active)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_category ON jobs (role_category)`,
	},
	TableSkills: {`
		CREATE TABLE IF NOT EXISTS skills (
			id SERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			category TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
	},
	TableContactSubmissions: {`
		CREATE TABLE IF NOT EXISTS contact_submissions (
			id SERIAL PRIMARY KEY,
			submission_type TEXT,
			full_name TEXT,
			email TEXT,
			company_name TEXT,
			company_website TEXT,
			user_role TEXT,
			linkedin_url TEXT,
			phone TEXT,
			job_title TEXT,
			message TEXT,
			newsletter_opt_in BOOLEAN DEFAULT FALSE,
			schedule_call BOOLEAN DEFAULT FALSE,
			site TEXT DEFAULT 'relocation',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			processed_at TIMESTAMPTZ,
			notes TEXT
		)`,
	},
}

type SchemaStore struct {
	db *sqlx.DB
}

func NewSchemaStore(db *sqlx.DB) *SchemaStore {
	return &SchemaStore{db: db}
}

// EnsureTable creates one of the reference tables and its indexes when
// missing.
func (s *SchemaStore) EnsureTable(ctx context.Context, table string) error {
	statements, ok := referenceDDL[table]
	if !ok {
		return fmt.Errorf("ensure table %q: %w", table, domain.ErrInvalidArgument)
	}
	exec := GetExecutor(ctx, s.db)
	for _, stmt := range statements {
		if _, err := exec.ExecContext(ctx, stmt); err != nil && !isDuplicateObject(err) {
			return fmt.Errorf("ensure %s table: %w", table, err)
		}
	}
	return nil
}

// LegacyReferenceStore reads companies, jobs and skills from the V1
// layout. Company extras live in a JSON payload there.
type LegacyReferenceStore struct {
	db *sqlx.DB
}

func NewLegacyReferenceStore(db *sqlx.DB) *LegacyReferenceStore {
	return &LegacyReferenceStore{db: db}
}

// ListCompanies returns the partition's published companies ordered by slug.
func (s *LegacyReferenceStore) ListCompanies(ctx context.Context, partition domain.Partition) ([]domain.Company, error) {
	where, args := partitionFilter(partition, 1)
	query := `
		SELECT
			slug,
			name,
			description,
			headquarters,
			specializations,
			overview,
			meta_description,
			payload::jsonb ->> 'website' AS website,
			payload::jsonb ->> 'fee' AS fee,
			COALESCE((payload::jsonb ->> 'featured')::boolean, FALSE) AS featured,
			CASE WHEN jsonb_typeof(payload::jsonb -> 'highlights') = 'array'
				THEN ARRAY(SELECT jsonb_array_elements_text(payload::jsonb -> 'highlights'))
			END AS highlights,
			company_type,
			app,
			status
		FROM companies
		WHERE slug IS NOT NULL AND status = 'published'` + where + `
		ORDER BY slug`

	companies := []domain.Company{}
	if err := GetExecutor(ctx, s.db).SelectContext(ctx, &companies, query, args...); err != nil {
		return nil, fmt.Errorf("list legacy companies: %w", err)
	}
	return companies, nil
}

// ListJobs returns up to limit active jobs.
func (s *LegacyReferenceStore) ListJobs(ctx context.Context, limit int) ([]domain.Job, error) {
	query := `
		SELECT
			slug,
			title,
			company_name,
			company_domain,
			location,
			COALESCE(is_remote, FALSE) AS is_remote,
			COALESCE(is_fractional, FALSE) AS is_fractional,
			workplace_type,
			salary_min,
			salary_max,
			COALESCE(salary_currency, 'GBP') AS salary_currency,
			compensation,
			posted_date,
			url,
			description_snippet,
			role_category::text AS role_category,
			skills_required,
			is_active,
			job_source AS source
		FROM jobs
		WHERE is_active = TRUE
		ORDER BY slug NULLS LAST
		LIMIT $1`

	jobs := []domain.Job{}
	if err := GetExecutor(ctx, s.db).SelectContext(ctx, &jobs, query, limit); err != nil {
		return nil, fmt.Errorf("list legacy jobs: %w", err)
	}
	return jobs, nil
}

func (s *LegacyReferenceStore) ListSkills(ctx context.Context, limit int) ([]domain.Skill, error) {
	query := `
		SELECT name, category
		FROM skills
		WHERE name IS NOT NULL
		ORDER BY name
		LIMIT $1`

	skills := []domain.Skill{}
	if err := GetExecutor(ctx, s.db).SelectContext(ctx, &skills, query, limit); err != nil {
		return nil, fmt.Errorf("list legacy skills: %w", err)
	}
	return skills, nil
}

type CompanyStore struct {
	db *sqlx.DB
}

func NewCompanyStore(db *sqlx.DB) *CompanyStore {
	return &CompanyStore{db: db}
}

func (s *CompanyStore) ExistingKeys(ctx context.Context, slugs []string) (map[string]struct{}, error) {
	return existingKeys(ctx, s.db, TableCompanies, "slug", slugs)
}

func (s *CompanyStore) Upsert(ctx context.Context, c *domain.Company) (domain.UpsertResult, error) {
	query := `
		INSERT INTO companies (
			slug, name, description, headquarters, specializations, overview,
			meta_description, website, fee, featured, highlights, company_type, app, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			headquarters = EXCLUDED.headquarters,
			specializations = EXCLUDED.specializations,
			overview = EXCLUDED.overview,
			meta_description = EXCLUDED.meta_description,
			website = EXCLUDED.website,
			fee = EXCLUDED.fee,
			featured = EXCLUDED.featured,
			highlights = EXCLUDED.highlights,
			company_type = EXCLUDED.company_type,
			app = EXCLUDED.app,
			status = EXCLUDED.status,
			updated_at = NOW()
		WHERE (companies.name, companies.description, companies.headquarters, companies.specializations,
		       companies.overview, companies.meta_description, companies.website, companies.fee,
		       companies.featured, companies.highlights, companies.company_type, companies.app, companies.status)
		   IS DISTINCT FROM
		      (EXCLUDED.name, EXCLUDED.description, EXCLUDED.headquarters, EXCLUDED.specializations,
		       EXCLUDED.overview, EXCLUDED.meta_description, EXCLUDED.website, EXCLUDED.fee,
		       EXCLUDED.featured, EXCLUDED.highlights, EXCLUDED.company_type, EXCLUDED.app, EXCLUDED.status)
		RETURNING (xmax = 0) AS inserted`

	result, err := upsertOutcome(GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		c.Slug, c.Name, c.Description, c.Headquarters, c.Specializations, c.Overview,
		c.MetaDescription, c.Website, c.Fee, c.Featured, c.Highlights, c.CompanyType, c.App, c.Status,
	))
	if err != nil {
		return result, fmt.Errorf("upsert company %q: %w", c.Slug, err)
	}
	return result, nil
}

type JobStore struct {
	db *sqlx.DB
}

func NewJobStore(db *sqlx.DB) *JobStore {
	return &JobStore{db: db}
}

func (s *JobStore) ExistingKeys(ctx context.Context, slugs []string) (map[string]struct{}, error) {
	return existingKeys(ctx, s.db, TableJobs, "slug", slugs)
}

// Upsert writes a job keyed on its slug. Jobs without one are rejected.
func (s *JobStore) Upsert(ctx context.Context, j *domain.Job) (domain.UpsertResult, error) {
	if j.Slug == nil || *j.Slug == "" {
		return domain.UpsertUnchanged, fmt.Errorf("upsert job %q without slug: %w", j.Title, domain.ErrInvalidArgument)
	}

	query := `
		INSERT INTO jobs (
			slug, title, company_name, company_domain, location, is_remote, is_fractional,
			workplace_type, salary_min, salary_max, salary_currency, compensation, posted_date,
			url, description_snippet, role_category, skills_required, is_active, source
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
		)
		ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			company_name = EXCLUDED.company_name,
			company_domain = EXCLUDED.company_domain,
			location = EXCLUDED.location,
			is_remote = EXCLUDED.is_remote,
			is_fractional = EXCLUDED.is_fractional,
			workplace_type = EXCLUDED.workplace_type,
			salary_min = EXCLUDED.salary_min,
			salary_max = EXCLUDED.salary_max,
			salary_currency = EXCLUDED.salary_currency,
			compensation = EXCLUDED.compensation,
			posted_date = EXCLUDED.posted_date,
			url = EXCLUDED.url,
			description_snippet = EXCLUDED.description_snippet,
			role_category = EXCLUDED.role_category,
			skills_required = EXCLUDED.skills_required,
			is_active = EXCLUDED.is_active,
			source = EXCLUDED.source,
			updated_at = NOW()
		WHERE (jobs.title, jobs.company_name, jobs.company_domain, jobs.location, jobs.is_remote,
		       jobs.is_fractional, jobs.workplace_type, jobs.salary_min, jobs.salary_max,
		       jobs.salary_currency, jobs.compensation, jobs.posted_date, jobs.url,
		       jobs.description_snippet, jobs.role_category, jobs.skills_required, jobs.is_active, jobs.source)
		   IS DISTINCT FROM
		      (EXCLUDED.title, EXCLUDED.company_name, EXCLUDED.company_domain, EXCLUDED.location, EXCLUDED.is_remote,
		       EXCLUDED.is_fractional, EXCLUDED.workplace_type, EXCLUDED.salary_min, EXCLUDED.salary_max,
		       EXCLUDED.salary_currency, EXCLUDED.compensation, EXCLUDED.posted_date, EXCLUDED.url,
		       EXCLUDED.description_snippet, EXCLUDED.role_category, EXCLUDED.skills_required, EXCLUDED.is_active, EXCLUDED.source)
		RETURNING (xmax = 0) AS inserted`

	result, err := upsertOutcome(GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		j.Slug, j.Title, j.CompanyName, j.CompanyDomain, j.Location, j.IsRemote, j.IsFractional,
		j.WorkplaceType, j.SalaryMin, j.SalaryMax, j.SalaryCurrency, j.Compensation, j.PostedDate,
		j.URL, j.DescriptionSnippet, j.RoleCategory, j.SkillsRequired, j.IsActive, j.Source,
	))
	if err != nil {
		return result, fmt.Errorf("upsert job %q: %w", *j.Slug, err)
	}
	return result, nil
}

type SkillStore struct {
	db *sqlx.DB
}

func NewSkillStore(db *sqlx.DB) *SkillStore {
	return &SkillStore{db: db}
}

func (s *SkillStore) ExistingKeys(ctx context.Context, names []string) (map[string]struct{}, error) {
	return existingKeys(ctx, s.db, TableSkills, "name", names)
}

func (s *SkillStore) Upsert(ctx context.Context, sk *domain.Skill) (domain.UpsertResult, error) {
	query := `
		INSERT INTO skills (name, category)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET
			category = EXCLUDED.category
		WHERE skills.category IS DISTINCT FROM EXCLUDED.category
		RETURNING (xmax = 0) AS inserted`

	result, err := upsertOutcome(GetExecutor(ctx, s.db).QueryRowxContext(ctx, query, sk.Name, sk.Category))
	if err != nil {
		return result, fmt.Errorf("upsert skill %q: %w", sk.Name, err)
	}
	return result, nil
}

// existingKeys reports which of keys already appear in table.column. Both
// names come from this package, never from input.
func existingKeys(ctx context.Context, db *sqlx.DB, table, column string, keys []string) (map[string]struct{}, error) {
	result := make(map[string]struct{})
	if len(keys) == 0 {
		return result, nil
	}

	col := pq.QuoteIdentifier(column)
	query := `SELECT ` + col + ` FROM ` + pq.QuoteIdentifier(table) + ` WHERE ` + col + ` = ANY($1)`

	rows, err := GetExecutor(ctx, db).QueryContext(ctx, query, pq.Array(keys))
	if err != nil {
		return nil, fmt.Errorf("query existing %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		result[key] = struct{}{}
	}

	return result, rows.Err()
}

// upsertOutcome reads the (xmax = 0) flag of an upsert. No row back means
// the conflict update was skipped because nothing changed.
func upsertOutcome(row *sqlx.Row) (domain.UpsertResult, error) {
	var inserted bool
	err := row.Scan(&inserted)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.UpsertUnchanged, nil
	case err != nil:
		return domain.UpsertUnchanged, err
	case inserted:
		return domain.UpsertInserted, nil
	default:
		return domain.UpsertUpdated, nil
	}
}
