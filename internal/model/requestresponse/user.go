package requestresponse

// UpdateUserRequest : тело запроса на обновление пользователя
type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ProfilePictureResponse : ответ на загрузку аватара
type ProfilePictureResponse struct {
	ProfilePicture string `json:"profilePicture"`
}
