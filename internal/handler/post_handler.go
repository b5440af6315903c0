package handler

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"strings"

	"reading-log-server/internal/model"
	"reading-log-server/internal/model/requestresponse"
	"reading-log-server/internal/ports"
	"reading-log-server/internal/security"

	"github.com/go-chi/chi/v5"
)

type PostHandler struct {
	ports.PostService
}

func NewPostHandler(postService ports.PostService) *PostHandler {
	return &PostHandler{postService}
}

// GetFeed : страница ленты, свежие посты первыми
func (h *PostHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r.URL.Query().Get("page"))

	posts, totalPages, err := h.PostService.GetFeed(r.Context(), page)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	sendJSON(w, http.StatusOK, feedResponse(posts, totalPages))
}

func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.PostService.GetPost(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, http.StatusNotFound, "пост не найден")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.PostResponseFromModel(post))
}

// GetUserPosts : посты одного пользователя с пагинацией ленты
func (h *PostHandler) GetUserPosts(w http.ResponseWriter, r *http.Request) {
	page := parsePage(r.URL.Query().Get("page"))

	posts, totalPages, err := h.PostService.GetUserPosts(r.Context(), chi.URLParam(r, "userUUID"), page)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	sendJSON(w, http.StatusOK, feedResponse(posts, totalPages))
}

// CreatePost принимает multipart: bookTitle, content, authorName,
// readingProgress и либо файл imageFile, либо готовый imageUrl
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный multipart-запрос")
		return
	}

	bookTitle := r.FormValue("bookTitle")
	if bookTitle == "" {
		sendErrorResponse(w, http.StatusBadRequest, "bookTitle обязателен")
		return
	}

	post := &model.Post{
		UserUUID:  claims.UserUUID,
		BookTitle: bookTitle,
		ImageURL:  r.FormValue("imageUrl"),
	}
	if content := r.FormValue("content"); content != "" {
		post.Content = sql.NullString{String: content, Valid: true}
	}
	if authorName := r.FormValue("authorName"); authorName != "" {
		post.AuthorName = sql.NullString{String: authorName, Valid: true}
	}
	if progress, err := strconv.ParseInt(r.FormValue("readingProgress"), 10, 64); err == nil {
		post.ReadingProgress = sql.NullInt64{Int64: progress, Valid: true}
	}

	image, closeImage := imageFromForm(r)
	defer closeImage()

	created, err := h.PostService.CreatePost(r.Context(), post, image)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	sendJSON(w, http.StatusCreated, requestresponse.PostResponseFromModel(created))
}

// UpdatePost перезаписывает переданные поля, остальные не трогает.
// Чужой пост менять нельзя
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный multipart-запрос")
		return
	}

	update := &model.PostUpdate{
		BookTitle:  r.FormValue("bookTitle"),
		Content:    r.FormValue("content"),
		ImageURL:   r.FormValue("imageUrl"),
		AuthorName: r.FormValue("authorName"),
	}
	if progress, err := strconv.ParseInt(r.FormValue("readingProgress"), 10, 64); err == nil {
		update.ReadingProgress = &progress
	}

	image, closeImage := imageFromForm(r)
	defer closeImage()

	post, err := h.PostService.UpdatePost(r.Context(), chi.URLParam(r, "uuid"), claims.UserUUID, update, image)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, http.StatusNotFound, "пост не найден")
		case strings.Contains(err.Error(), "нельзя изменять чужой пост"):
			sendErrorResponse(w, http.StatusForbidden, "нельзя изменять чужой пост")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.PostResponseFromModel(post))
}

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	if err := h.PostService.DeletePost(r.Context(), chi.URLParam(r, "uuid"), claims.UserUUID); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, http.StatusNotFound, "пост не найден")
		case strings.Contains(err.Error(), "нельзя изменять чужой пост"):
			sendErrorResponse(w, http.StatusForbidden, "нельзя изменять чужой пост")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleLike : лайк либо ставится, либо снимается
func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	liked, err := h.PostService.ToggleLike(r.Context(), chi.URLParam(r, "uuid"), claims.UserUUID)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, http.StatusNotFound, "пост не найден")
		case strings.Contains(err.Error(), "нельзя лайкать свой пост"):
			sendErrorResponse(w, http.StatusBadRequest, "нельзя лайкать свой пост")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	message := "лайк поставлен"
	if !liked {
		message = "лайк снят"
	}
	sendJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: message})
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func feedResponse(posts []model.Post, totalPages int) requestresponse.FeedResponse {
	resp := requestresponse.FeedResponse{
		Posts:      make([]requestresponse.PostResponse, 0, len(posts)),
		TotalPages: totalPages,
	}
	for i := range posts {
		resp.Posts = append(resp.Posts, requestresponse.PostResponseFromModel(&posts[i]))
	}
	return resp
}

// imageFromForm достает файл imageFile, nil — если его нет
func imageFromForm(r *http.Request) (*model.ImageUpload, func()) {
	file, header, err := r.FormFile("imageFile")
	if err != nil {
		return nil, func() {}
	}

	upload := &model.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}
	return upload, func() { file.Close() }
}
