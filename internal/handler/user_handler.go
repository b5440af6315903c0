package handler

import (
	"log"
	"net/http"
	"strings"

	"reading-log-server/internal/model/requestresponse"
	"reading-log-server/internal/ports"

	"github.com/go-chi/chi/v5"
)

const maxUploadSize = 10 << 20 // 10 MiB на multipart-запрос

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// ListUsers : все пользователи без чувствительных полей
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	resp := make([]requestresponse.UserData, 0, len(users))
	for _, user := range users {
		resp = append(resp, requestresponse.UserDataFromModel(user))
	}

	sendJSON(w, http.StatusOK, resp)
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetUser(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, http.StatusNotFound, "пользователь не найден")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.UserDataFromModel(user))
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	user, err := h.UserService.UpdateUser(r.Context(), chi.URLParam(r, "uuid"), req.Username, req.Email)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, http.StatusNotFound, "пользователь не найден")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.UserDataFromModel(user))
}

// UploadProfilePicture принимает multipart с полем profilePicture
func (h *UserHandler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "некорректный multipart-запрос")
		return
	}

	file, header, err := r.FormFile("profilePicture")
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "файл не загружен")
		return
	}
	defer file.Close()

	path, err := h.UserService.UploadProfilePicture(
		r.Context(),
		chi.URLParam(r, "uuid"),
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, http.StatusNotFound, "пользователь не найден")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.ProfilePictureResponse{ProfilePicture: path})
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.DeleteUser(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		log.Println(err)
		switch {
		case strings.Contains(err.Error(), "не найден"):
			sendErrorResponse(w, http.StatusNotFound, "пользователь не найден")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	sendJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "пользователь удален"})
}
