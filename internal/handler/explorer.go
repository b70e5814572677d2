package handler

import (
	"net/http"
	"strconv"

	"shopcat/internal/apierror"
	"shopcat/internal/dto"
	"shopcat/internal/explorer"
	"shopcat/internal/middleware"
	"shopcat/internal/service"

	"github.com/gin-gonic/gin"
)

// ExplorerHandler exposes the catalog explorer: the sidebar tree, the
// per-user navigation session and the paged content pane.
type ExplorerHandler struct{ svc service.ExplorerService }

func NewExplorerHandler(svc service.ExplorerService) *ExplorerHandler {
	return &ExplorerHandler{svc: svc}
}

func userID(c *gin.Context) string {
	if claims := middleware.GetClaims(c); claims != nil {
		return claims.UserID
	}
	return ""
}

// Tree godoc
// @Summary Full brand/category tree for the sidebar
// @Tags explorer
// @Produce json
// @Success 200 {array} explorer.TreeNode
// @Failure 500 {object} apierror.APIError
// @Router /v1/explorer/tree [get]
func (h *ExplorerHandler) Tree(c *gin.Context) {
	tree, err := h.svc.Tree(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to build catalog tree"))
		return
	}
	c.JSON(http.StatusOK, tree)
}

func (h *ExplorerHandler) State(c *gin.Context) {
	resp, err := h.svc.State(c.Request.Context(), userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load explorer state"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ExplorerHandler) SelectBrand(c *gin.Context) {
	var req dto.SelectBrandRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SelectBrand(c.Request.Context(), userID(c), req.BrandID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to update explorer state"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ExplorerHandler) SelectCategory(c *gin.Context) {
	var req dto.SelectCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SelectCategory(c.Request.Context(), userID(c), req.CategoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to update explorer state"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ExplorerHandler) Back(c *gin.Context) {
	resp, err := h.svc.Back(c.Request.Context(), userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to update explorer state"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ExplorerHandler) Breadcrumb(c *gin.Context) {
	var req dto.BreadcrumbRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Breadcrumb(c.Request.Context(), userID(c), req.Index)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to update explorer state"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Content returns one page of the merged category+product list for the
// current view. Query params: q, page, perPage.
func (h *ExplorerHandler) Content(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "0"))

	req := explorer.PageRequest{
		Query:   c.Query("q"),
		Page:    page,
		PerPage: perPage,
	}
	resp, err := h.svc.Content(c.Request.Context(), userID(c), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load explorer content"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
