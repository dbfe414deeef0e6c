package v1

import (
	"net/http"

	"devhire-backend/internal/delivery/http/middleware"
	"devhire-backend/internal/delivery/http/response"
	"devhire-backend/internal/domain"
	"devhire-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchUC domain.SearchUsecase
}

func NewSearchHandler(r *gin.RouterGroup, searchUC domain.SearchUsecase) {
	handler := &SearchHandler{searchUC: searchUC}

	search := r.Group("/search", middleware.RequireRole(domain.RoleRecruiter))
	{
		search.GET("/developers", handler.SearchDevelopers)
		search.GET("/developers/:userId", handler.GetDeveloperProfile)
		search.GET("/stats", handler.GetStats)
	}
}

// SearchDevelopers godoc
// @Summary      Search developer profiles
// @Description  Filters are optional; invalid filter values are ignored and pagination is clamped
// @Tags         search
// @Produce      json
// @Param        skills         query  string  false  "Comma separated skills, any match"
// @Param        location       query  string  false  "Location substring"
// @Param        availability   query  string  false  "available | open-to-offers | not-available"
// @Param        minCompletion  query  number  false  "Minimum profile completion 0-100"
// @Param        page           query  int     false  "Page, default 1"
// @Param        limit          query  int     false  "Page size 1-50, default 12"
// @Success      200  {object}  response.PaginatedResponse{data=[]domain.DeveloperProfile}
// @Failure      403  {object}  response.Response
// @Router       /search/developers [get]
// @Security     BearerAuth
func (h *SearchHandler) SearchDevelopers(c *gin.Context) {
	var query domain.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Invalid query", err))
		return
	}

	result, err := h.searchUC.SearchDevelopers(c.Request.Context(), middleware.Identity(c), query)
	if err != nil {
		c.Error(err)
		return
	}
	response.Paginated(c, http.StatusOK, "Developers retrieved", result.Data, result.Pagination)
}

// GetDeveloperProfile godoc
// @Summary      View a developer profile
// @Tags         search
// @Produce      json
// @Param        userId  path  string  true  "Developer user ID"
// @Success      200  {object}  response.Response{data=profileEnvelope}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /search/developers/{userId} [get]
// @Security     BearerAuth
func (h *SearchHandler) GetDeveloperProfile(c *gin.Context) {
	profile, err := h.searchUC.GetDeveloperProfile(c.Request.Context(), middleware.Identity(c), c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", profileEnvelope{Profile: profile})
}

// GetStats godoc
// @Summary      Developer pool statistics
// @Tags         search
// @Produce      json
// @Success      200  {object}  response.Response{data=statsEnvelope}
// @Router       /search/stats [get]
// @Security     BearerAuth
func (h *SearchHandler) GetStats(c *gin.Context) {
	stats, err := h.searchUC.GetStats(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Statistics retrieved", statsEnvelope{Stats: stats})
}
