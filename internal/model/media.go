package model

import "io"

// ImageUpload : изображение из multipart-запроса до загрузки в хранилище
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}
