package domain

import "time"

// SessionUser is the identity resolved from the auth provider.
type SessionUser struct {
	ID    string
	Email *string
}

type UserProfile struct {
	ID             int64     `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	Email          *string   `db:"email" json:"email"`
	PreferredName  *string   `db:"preferred_name" json:"preferred_name"`
	FavoriteTopics []string  `json:"favorite_topics"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ProfileUpdate overwrites the editable profile fields. A nil field is
// written as NULL, previous values are never merged in.
type ProfileUpdate struct {
	PreferredName  *string
	FavoriteTopics []string
}

type TopicSummary struct {
	Topic        string    `db:"topic" json:"topic"`
	ArticleTitle *string   `db:"article_title" json:"articleTitle"`
	ArticleSlug  *string   `db:"article_slug" json:"articleSlug"`
	LastAsked    time.Time `db:"last_asked" json:"lastAsked"`
	TimesAsked   int       `db:"times_asked" json:"timesAsked"`
}

type VisitStats struct {
	VisitCount int        `db:"visit_count"`
	FirstVisit *time.Time `db:"first_visit"`
	LastVisit  *time.Time `db:"last_visit"`
}

type RecentActivity struct {
	Topics      []TopicSummary `json:"topics"`
	VisitCount  int            `json:"visitCount"`
	IsReturning bool           `json:"isReturning"`
	FirstVisit  *time.Time     `json:"firstVisit"`
	LastVisit   *time.Time     `json:"lastVisit"`
}

// EmptyActivity is the payload served when personalization has nothing
// to say about a visitor.
func EmptyActivity() *RecentActivity {
	return &RecentActivity{Topics: []TopicSummary{}}
}
