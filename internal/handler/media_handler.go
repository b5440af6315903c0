package handler

import (
	"log"
	"net/http"
	"time"

	"reading-log-server/internal/ports"

	"github.com/go-chi/chi/v5"
)

type MediaHandler struct {
	storage ports.MediaStorage
	expire  time.Duration
}

func NewMediaHandler(storage ports.MediaStorage, expire time.Duration) *MediaHandler {
	return &MediaHandler{storage: storage, expire: expire}
}

// ServeObject отдает редирект на presigned ссылку вместо проксирования байт
func (h *MediaHandler) ServeObject(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		sendErrorResponse(w, http.StatusBadRequest, "нужен ключ объекта")
		return
	}

	url, err := h.storage.GeneratePresignedGetURL(r.Context(), key, h.expire)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusNotFound, "объект не найден")
		return
	}

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}
