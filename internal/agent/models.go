package agent

import "relocation_quest/internal/domain"

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type searchResponse struct {
	Articles []domain.SearchHit `json:"articles"`
	Query    string             `json:"query"`
}
