package v1

import (
	"fmt"
	"net/http"
	"strings"

	"devhire-backend/internal/delivery/http/middleware"
	"devhire-backend/internal/delivery/http/response"
	"devhire-backend/internal/domain"
	"devhire-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

type ShortlistHandler struct {
	shortlistUC domain.ShortlistUsecase
}

func NewShortlistHandler(r *gin.RouterGroup, shortlistUC domain.ShortlistUsecase) {
	handler := &ShortlistHandler{shortlistUC: shortlistUC}

	shortlist := r.Group("/shortlist", middleware.RequireRole(domain.RoleRecruiter))
	{
		shortlist.POST("", handler.Add)
		shortlist.GET("", handler.List)
		shortlist.GET("/check/:developerId", handler.Check)
		shortlist.GET("/export", handler.Export)
		shortlist.DELETE("/:developerId", handler.Remove)
	}
}

// Add godoc
// @Summary      Shortlist a developer
// @Tags         shortlist
// @Accept       json
// @Produce      json
// @Param        request  body  domain.AddShortlistRequest  true  "Developer and notes"
// @Success      201  {object}  response.Response{data=shortlistEntryEnvelope}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /shortlist [post]
// @Security     BearerAuth
func (h *ShortlistHandler) Add(c *gin.Context) {
	var req domain.AddShortlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	entry, err := h.shortlistUC.Add(c.Request.Context(), middleware.Identity(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Developer added to shortlist", shortlistEntryEnvelope{Shortlist: entry})
}

// List godoc
// @Summary      List shortlisted developers
// @Tags         shortlist
// @Produce      json
// @Success      200  {object}  response.Response{data=shortlistEnvelope}
// @Router       /shortlist [get]
// @Security     BearerAuth
func (h *ShortlistHandler) List(c *gin.Context) {
	views, err := h.shortlistUC.List(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Shortlist retrieved", shortlistEnvelope{Shortlist: views})
}

// Check godoc
// @Summary      Check whether a developer is shortlisted
// @Tags         shortlist
// @Produce      json
// @Param        developerId  path  string  true  "Developer user ID"
// @Success      200  {object}  response.Response{data=shortlistCheckEnvelope}
// @Router       /shortlist/check/{developerId} [get]
// @Security     BearerAuth
func (h *ShortlistHandler) Check(c *gin.Context) {
	ok, err := h.shortlistUC.Check(c.Request.Context(), middleware.Identity(c), c.Param("developerId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Shortlist status", shortlistCheckEnvelope{IsShortlisted: ok})
}

// Remove godoc
// @Summary      Remove a developer from the shortlist
// @Tags         shortlist
// @Produce      json
// @Param        developerId  path  string  true  "Developer user ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /shortlist/{developerId} [delete]
// @Security     BearerAuth
func (h *ShortlistHandler) Remove(c *gin.Context) {
	if err := h.shortlistUC.Remove(c.Request.Context(), middleware.Identity(c), c.Param("developerId")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Developer removed from shortlist", nil)
}

// Export godoc
// @Summary      Export the shortlist
// @Tags         shortlist
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      text/csv
// @Param        format  query  string  false  "xlsx (default) or csv"
// @Success      200  {file}  file
// @Failure      400  {object}  response.Response
// @Router       /shortlist/export [get]
// @Security     BearerAuth
func (h *ShortlistHandler) Export(c *gin.Context) {
	data, filename, err := h.shortlistUC.Export(c.Request.Context(), middleware.Identity(c), c.Query("format"))
	if err != nil {
		c.Error(err)
		return
	}

	contentType := contentTypeXLSX
	if strings.HasSuffix(filename, "."+domain.ExportFormatCSV) {
		contentType = contentTypeCSV
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}
