package handler

import (
	"net/http"

	"shopcat/internal/apierror"
	"shopcat/internal/infra"

	"github.com/gin-gonic/gin"
)

// 5 MB — logos and catalog images only, not arbitrary assets.
const maxUploadSize = 5 << 20

var allowedUploadFolders = map[string]bool{
	"brands":     true,
	"categories": true,
	"products":   true,
}

// MediaHandler proxies image uploads to the media service and returns the
// secure URL the client stores on the owning record.
type MediaHandler struct{ client *infra.MediaClient }

func NewMediaHandler(client *infra.MediaClient) *MediaHandler {
	return &MediaHandler{client: client}
}

func (h *MediaHandler) Upload(c *gin.Context) {
	folder := c.PostForm("folder")
	if !allowedUploadFolders[folder] {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid upload folder"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Missing file"))
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, apierror.New("File exceeds the 5 MB upload limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Unreadable file"))
		return
	}
	defer file.Close()

	url, err := h.client.Upload(c.Request.Context(), folder, fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusBadGateway, apierror.New("Upload failed"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"secure_url": url})
}
