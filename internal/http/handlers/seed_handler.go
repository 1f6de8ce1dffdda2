package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-escrow/internal/dto"
	"github.com/ignatzorin/freelance-escrow/internal/http/handlers/common"
	"github.com/ignatzorin/freelance-escrow/internal/service"
)

// SeedHandler обрабатывает запросы на генерацию тестовых данных.
type SeedHandler struct {
	seed *service.SeedService
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seed *service.SeedService) *SeedHandler {
	return &SeedHandler{seed: seed}
}

// Seed генерирует тестовые данные.
// POST /api/seed
func (h *SeedHandler) Seed(c *gin.Context) {
	var req dto.SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = dto.SeedRequest{}
	}

	if req.NumUsers < 1 {
		req.NumUsers = 10
	}
	if req.NumProjects < 1 {
		req.NumProjects = 15
	}
	if req.NumUsers > 200 {
		req.NumUsers = 200
	}
	if req.NumProjects > 500 {
		req.NumProjects = 500
	}

	if err := h.seed.SeedData(c.Request.Context(), req.NumUsers, req.NumProjects); err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "тестовые данные сгенерированы",
		"num_users":    req.NumUsers,
		"num_projects": req.NumProjects,
	})
}
