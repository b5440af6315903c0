package requestresponse

// CreateCommentRequest : тело запроса на создание комментария
type CreateCommentRequest struct {
	PostID  string `json:"postId"`
	Content string `json:"content"`
}

// UpdateCommentRequest : тело запроса на изменение комментария
type UpdateCommentRequest struct {
	Content string `json:"content"`
}
