package domain

import (
	"time"

	"github.com/lib/pq"
)

// Company is a relocation agency or service provider listed on the site.
type Company struct {
	Slug            string         `db:"slug"`
	Name            string         `db:"name"`
	Description     *string        `db:"description"`
	Headquarters    *string        `db:"headquarters"`
	Specializations pq.StringArray `db:"specializations"`
	Overview        *string        `db:"overview"`
	MetaDescription *string        `db:"meta_description"`
	Website         *string        `db:"website"`
	Fee             *string        `db:"fee"`
	Featured        bool           `db:"featured"`
	Highlights      pq.StringArray `db:"highlights"`
	CompanyType     *string        `db:"company_type"`
	App             *string        `db:"app"`
	Status          *string        `db:"status"`
}

// Job is a job board listing. Slug is optional on the V1 board, and rows
// without one cannot be matched across instances.
type Job struct {
	Slug               *string        `db:"slug"`
	Title              string         `db:"title"`
	CompanyName        *string        `db:"company_name"`
	CompanyDomain      *string        `db:"company_domain"`
	Location           *string        `db:"location"`
	IsRemote           bool           `db:"is_remote"`
	IsFractional       bool           `db:"is_fractional"`
	WorkplaceType      *string        `db:"workplace_type"`
	SalaryMin          *int64         `db:"salary_min"`
	SalaryMax          *int64         `db:"salary_max"`
	SalaryCurrency     string         `db:"salary_currency"`
	Compensation       *string        `db:"compensation"`
	PostedDate         *time.Time     `db:"posted_date"`
	URL                *string        `db:"url"`
	DescriptionSnippet *string        `db:"description_snippet"`
	RoleCategory       *string        `db:"role_category"`
	SkillsRequired     pq.StringArray `db:"skills_required"`
	IsActive           bool           `db:"is_active"`
	Source             *string        `db:"source"`
}

// Skill is keyed on its name.
type Skill struct {
	Name     string  `db:"name"`
	Category *string `db:"category"`
}

// CopyStats summarises one step of a reference data copy. Err is set when
// the step could not run at all; per-row failures only count in Errors.
type CopyStats struct {
	Step      string
	Fetched   int
	New       int
	Updated   int
	Unchanged int
	Skipped   int
	Errors    int
	Err       string
}

func (s CopyStats) Failed() bool {
	return s.Err != "" || s.Errors > 0
}
