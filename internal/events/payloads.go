package events

type ReviewCreatedPayload struct {
	ReviewID        string  `json:"review_id"`
	ProfileID       string  `json:"profile_id"`
	CreatorUsername string  `json:"creator_username"`
	AuthorID        string  `json:"author_id"`
	Stars           *int    `json:"stars,omitempty"`
	Rating          float64 `json:"rating"`
}

type CreatorStatusChangedPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
}

type CreatorRemovedPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
