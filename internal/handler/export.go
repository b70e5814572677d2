package handler

import (
	"net/http"

	"shopcat/internal/apierror"
	"shopcat/internal/dto"
	"shopcat/internal/middleware"
	"shopcat/internal/service"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct{ svc service.ExportService }

func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Enqueue godoc
// @Summary Queue an async catalog PDF export
// @Tags export
// @Accept json
// @Produce json
// @Param body body dto.ExportCatalogRequest true "Export options"
// @Success 202 {object} dto.ExportCatalogResponse
// @Failure 500 {object} apierror.APIError
// @Router /v1/exports/catalog [post]
func (h *ExportHandler) Enqueue(c *gin.Context) {
	var req dto.ExportCatalogRequest
	if !bindAndValidate(c, &req) {
		return
	}

	requestedBy := ""
	if claims := middleware.GetClaims(c); claims != nil {
		requestedBy = claims.Username
	}

	resp, err := h.svc.Enqueue(c.Request.Context(), requestedBy, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to queue export"))
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
