package handler

import (
	"log"
	"net/http"
	"strings"

	"reading-log-server/internal/model/requestresponse"
	"reading-log-server/internal/ports"
	"reading-log-server/internal/security"

	"github.com/go-chi/chi/v5"
)

type CommentHandler struct {
	ports.CommentService
}

func NewCommentHandler(commentService ports.CommentService) *CommentHandler {
	return &CommentHandler{commentService}
}

// CreateComment : автор берется из access токена, а не из тела запроса
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	var req requestresponse.CreateCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if req.PostID == "" || req.Content == "" {
		sendErrorResponse(w, http.StatusBadRequest, "нужны postId и content")
		return
	}

	comment, err := h.CommentService.CreateComment(r.Context(), claims.UserUUID, req.PostID, req.Content)
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

	sendJSON(w, http.StatusCreated, comment)
}

func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.UpdateCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if req.Content == "" {
		sendErrorResponse(w, http.StatusBadRequest, "content обязателен")
		return
	}

	comment, err := h.CommentService.UpdateComment(r.Context(), chi.URLParam(r, "uuid"), req.Content)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, http.StatusNotFound, "комментарий не найден")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	sendJSON(w, http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := h.CommentService.DeleteComment(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, http.StatusNotFound, "комментарий не найден")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "комментарий удален"})
}

// ListByPost возвращает комментарии поста вместе с именами авторов
func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	comments, err := h.CommentService.ListByPost(r.Context(), chi.URLParam(r, "postUUID"))
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	sendJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	comments, err := h.CommentService.ListAll(r.Context())
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	sendJSON(w, http.StatusOK, comments)
}
