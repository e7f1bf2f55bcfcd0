package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rizzedin/rizzedin-backend/internal/usecase/persona"
)

// PersonaHandler exposes the admin-only persona import surface.
type PersonaHandler struct {
	personaUseCase *persona.PersonaUseCase
}

func NewPersonaHandler(personaUseCase *persona.PersonaUseCase) *PersonaHandler {
	return &PersonaHandler{
		personaUseCase: personaUseCase,
	}
}

// ImportPersona handles POST /admin/personas
// @Summary Import a persona (admin)
// @Description Scrape a public profile and create a persona account from it
// @Tags persona
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body persona.ImportRequest true "Profile to import"
// @Success 201 {object} domain.UserProfile
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /admin/personas [post]
func (h *PersonaHandler) ImportPersona(c *gin.Context) {
	var req persona.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.personaUseCase.Import(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// ListPersonas handles GET /admin/personas
// @Summary List personas (admin)
// @Tags persona
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.UserProfile
// @Router /admin/personas [get]
func (h *PersonaHandler) ListPersonas(c *gin.Context) {
	personas, err := h.personaUseCase.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, personas)
}

// DeletePersona handles DELETE /admin/personas/:persona_id
// @Summary Delete a persona (admin)
// @Tags persona
// @Security BearerAuth
// @Param persona_id path string true "Persona ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/personas/{persona_id} [delete]
func (h *PersonaHandler) DeletePersona(c *gin.Context) {
	if err := h.personaUseCase.Delete(c.Request.Context(), c.Param("persona_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
