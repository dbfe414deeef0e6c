package v1

import (
	"net/http"

	"devhire-backend/internal/delivery/http/middleware"
	"devhire-backend/internal/delivery/http/response"
	"devhire-backend/internal/domain"
	"devhire-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

type addSkillsRequest struct {
	Skills []string `json:"skills"`
}

func NewProfileHandler(r *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	profile := r.Group("/profile")
	{
		// Readable by any authenticated role
		profile.GET("/:userId", handler.GetProfileByUserID)

		own := profile.Group("", middleware.RequireRole(domain.RoleDeveloper))
		own.GET("", handler.GetOwnProfile)
		own.PUT("", handler.UpdateProfile)
		own.GET("/completion", handler.GetCompletion)
		own.POST("/skills", handler.AddSkills)
		own.DELETE("/skills/:skill", handler.RemoveSkill)
		own.POST("/experience", handler.AddExperience)
		own.POST("/education", handler.AddEducation)
		own.POST("/projects", handler.AddProject)
	}
}

// GetOwnProfile godoc
// @Summary      Get own developer profile
// @Description  Returns the caller's profile, creating an empty one on first access
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response{data=profileEnvelope}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	profile, err := h.profileUC.GetOwnProfile(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", profileEnvelope{Profile: profile})
}

// GetProfileByUserID godoc
// @Summary      Get a developer profile
// @Tags         profile
// @Produce      json
// @Param        userId  path  string  true  "Developer user ID"
// @Success      200  {object}  response.Response{data=profileEnvelope}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profile/{userId} [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetProfileByUserID(c *gin.Context) {
	profile, err := h.profileUC.GetProfileByUserID(c.Request.Context(), middleware.Identity(c), c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile retrieved", profileEnvelope{Profile: profile})
}

// UpdateProfile godoc
// @Summary      Update basic profile info
// @Description  Partial update of title, bio, location, availability and social links
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body  domain.ProfileUpdate  true  "Fields to change"
// @Success      200  {object}  response.Response{data=profileEnvelope}
// @Failure      400  {object}  response.Response
// @Router       /profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req domain.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	profile, err := h.profileUC.UpdateProfile(c.Request.Context(), middleware.Identity(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated", profileEnvelope{Profile: profile})
}

// GetCompletion godoc
// @Summary      Profile completion breakdown
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CompletionReport}
// @Router       /profile/completion [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetCompletion(c *gin.Context) {
	report, err := h.profileUC.GetCompletion(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile completion", report)
}

// AddSkills godoc
// @Summary      Add skills
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body  addSkillsRequest  true  "Skills to add"
// @Success      200  {object}  response.Response{data=domain.SkillsResult}
// @Failure      400  {object}  response.Response
// @Router       /profile/skills [post]
// @Security     BearerAuth
func (h *ProfileHandler) AddSkills(c *gin.Context) {
	var req addSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Skills must be an array", err))
		return
	}

	result, err := h.profileUC.AddSkills(c.Request.Context(), middleware.Identity(c), req.Skills)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skills added", result)
}

// RemoveSkill godoc
// @Summary      Remove a skill
// @Tags         profile
// @Produce      json
// @Param        skill  path  string  true  "Skill to remove"
// @Success      200  {object}  response.Response{data=domain.SkillsResult}
// @Failure      404  {object}  response.Response
// @Router       /profile/skills/{skill} [delete]
// @Security     BearerAuth
func (h *ProfileHandler) RemoveSkill(c *gin.Context) {
	result, err := h.profileUC.RemoveSkill(c.Request.Context(), middleware.Identity(c), c.Param("skill"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill removed", result)
}

// AddExperience godoc
// @Summary      Add an experience entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body  domain.Experience  true  "Experience entry"
// @Success      201  {object}  response.Response{data=experienceEnvelope}
// @Failure      400  {object}  response.Response
// @Router       /profile/experience [post]
// @Security     BearerAuth
func (h *ProfileHandler) AddExperience(c *gin.Context) {
	var req domain.Experience
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	profile, err := h.profileUC.AddExperience(c.Request.Context(), middleware.Identity(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Experience added", experienceEnvelope{
		Experience:        profile.Experience,
		ProfileCompletion: profile.ProfileCompletion,
	})
}

// AddEducation godoc
// @Summary      Add an education entry
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body  domain.Education  true  "Education entry"
// @Success      201  {object}  response.Response{data=educationEnvelope}
// @Failure      400  {object}  response.Response
// @Router       /profile/education [post]
// @Security     BearerAuth
func (h *ProfileHandler) AddEducation(c *gin.Context) {
	var req domain.Education
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	profile, err := h.profileUC.AddEducation(c.Request.Context(), middleware.Identity(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Education added", educationEnvelope{
		Education:         profile.Education,
		ProfileCompletion: profile.ProfileCompletion,
	})
}

// AddProject godoc
// @Summary      Add a project
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body  domain.Project  true  "Project"
// @Success      201  {object}  response.Response{data=projectsEnvelope}
// @Failure      400  {object}  response.Response
// @Router       /profile/projects [post]
// @Security     BearerAuth
func (h *ProfileHandler) AddProject(c *gin.Context) {
	var req domain.Project
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.New(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	profile, err := h.profileUC.AddProject(c.Request.Context(), middleware.Identity(c), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Project added", projectsEnvelope{
		Projects:          profile.Projects,
		ProfileCompletion: profile.ProfileCompletion,
	})
}
