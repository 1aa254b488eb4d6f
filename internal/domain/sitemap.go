package domain

import "time"

type ChangeFrequency string

const (
	ChangeDaily   ChangeFrequency = "daily"
	ChangeWeekly  ChangeFrequency = "weekly"
	ChangeMonthly ChangeFrequency = "monthly"
	ChangeYearly  ChangeFrequency = "yearly"
)

type SitemapEntry struct {
	URL             string
	LastModified    time.Time
	ChangeFrequency ChangeFrequency
	Priority        float64
}
