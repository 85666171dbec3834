package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ScanHandler struct {
	scanService service.ScanService
	authz       middleware.SuperadminChecker
}

// NewScanHandler sets up the routing dependencies for the introspection endpoint
func NewScanHandler(scanService service.ScanService, authz middleware.SuperadminChecker) *ScanHandler {
	return &ScanHandler{scanService: scanService, authz: authz}
}

// RegisterRoutes binds the endpoint to the gin Engine or RouterGroup. Any
// method is accepted; OPTIONS never reaches here because the CORS middleware
// short-circuits preflights.
func (h *ScanHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.Any("/api/system/introspect", middleware.RequireSuperadmin(h.authz), h.Introspect)
}

// Introspect runs a full metadata scan and returns the inventory snapshot
// @Summary      Run a system introspection scan
// @Description  Inventories actions, settings, events, effects, triggers and permissions, cross-references them and derives a defect report. Superadmin only.
// @Tags         introspection
// @Security     BearerAuth
// @Produce      json
// @Param        format  query     string  false  "Output format: json (default), markdown or md"
// @Success      200     {object}  model.InventorySnapshot
// @Failure      401     {object}  object{error=string}
// @Failure      500     {object}  object{error=string}
// @Router       /api/system/introspect [get]
func (h *ScanHandler) Introspect(c *gin.Context) {
	snapshot, err := h.scanService.RunScan(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "markdown", "md":
		c.Header("Content-Disposition", `attachment; filename="inventory.md"`)
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(service.RenderMarkdown(snapshot)))
	default:
		c.Header("Content-Disposition", `attachment; filename="inventory.json"`)
		c.JSON(http.StatusOK, snapshot)
	}
}
