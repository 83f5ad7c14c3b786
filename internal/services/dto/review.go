package dto

// CreateReviewRequest - обязательность полей проверяет сервис,
// чтобы вернуть единое сообщение об ошибке.
type CreateReviewRequest struct {
	CreatorUsername string `json:"creator_username" form:"creator_username"`
	Content         string `json:"content" form:"content"`
	Stars           *int   `json:"stars" form:"stars"`
}

type CreateReviewResponse struct {
	Message string     `json:"message"`
	Review  ReviewView `json:"review"`
}
