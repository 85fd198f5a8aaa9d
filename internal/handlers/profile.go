package handlers

import (
	"net/http"

	"github.com/akankshasoni024/My-Tasks-App/internal/dto"
	"github.com/akankshasoni024/My-Tasks-App/internal/profile"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles *profile.Store
}

func NewProfileHandler(profiles *profile.Store) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get godoc
// @Summary      Get the saved display name
// @Tags         profile
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Failure      404  {object}  map[string]string
// @Router       /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	name, ok, err := h.profiles.Name(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no profile yet"})
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{Name: name})
}

// Put godoc
// @Summary      Save the display name (onboarding)
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ProfileRequest  true  "Profile"
// @Success      200   {object}  dto.ProfileResponse
// @Failure      400   {object}  map[string]string
// @Router       /profile [put]
func (h *ProfileHandler) Put(c *gin.Context) {
	var req dto.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.profiles.SetName(c.Request.Context(), req.Name); err != nil {
		if err == profile.ErrEmptyName {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{Name: req.Name})
}
