package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/pagination"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	historyService service.HistoryService
	authz          middleware.SuperadminChecker
}

func NewHistoryHandler(historyService service.HistoryService, authz middleware.SuperadminChecker) *HistoryHandler {
	return &HistoryHandler{historyService: historyService, authz: authz}
}

func (h *HistoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/scan-history")
	group.Use(middleware.RequireSuperadmin(h.authz))
	{
		group.GET("", h.ListScans)
		group.GET("/:id", h.GetScan)
		group.GET("/:id/defects", h.ListDefects)
	}
}

// ListScans retrieves the paginated scan archive, newest first
// @Summary      List scan history
// @Description  Returns archived scan runs with their summary counters
// @Tags         scan-history
// @Security     BearerAuth
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /api/scan-history [get]
func (h *HistoryHandler) ListScans(c *gin.Context) {
	params := pagination.Parse(c)

	scans, total, err := h.historyService.ListScans(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to retrieve scan history: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"scans": scans,
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
	}))
}

// GetScan retrieves one archived scan including its full snapshot payload
// @Summary      Get an archived scan
// @Tags         scan-history
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Scan ID"
// @Success      200  {object}  response.Response{data=service.ScanDetailResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/scan-history/{id} [get]
func (h *HistoryHandler) GetScan(c *gin.Context) {
	scan, err := h.historyService.GetScan(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, scan))
}

// ListDefects retrieves the archived defect rows of one scan
// @Summary      List defects of an archived scan
// @Tags         scan-history
// @Security     BearerAuth
// @Produce      json
// @Param        id     path      string  true   "Scan ID"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Number of items per page (default 20)"
// @Success      200    {object}  response.Response{data=object}
// @Router       /api/scan-history/{id}/defects [get]
func (h *HistoryHandler) ListDefects(c *gin.Context) {
	params := pagination.Parse(c)

	defects, total, err := h.historyService.ListDefects(c.Request.Context(), c.Param("id"), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to retrieve defects: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, map[string]interface{}{
		"defects": defects,
		"total":   total,
		"page":    params.Page,
		"limit":   params.Limit,
	}))
}
