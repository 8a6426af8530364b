package handlers

import (
	"github.com/BalajiReddy1/FreshTrack/domain"
	"github.com/BalajiReddy1/FreshTrack/internal/api/presenters"
	"github.com/BalajiReddy1/FreshTrack/pkg/dashboard"
	"github.com/gofiber/fiber/v2"
)

type (
	DashboardHandler interface {
		GetDashboard(c *fiber.Ctx) error
	}

	dashboardHandler struct {
		dashboardService dashboard.DashboardService
	}
)

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandler{dashboardService: dashboardService}
}

func (h *dashboardHandler) GetDashboard(c *fiber.Ctx) error {
	summary, err := h.dashboardService.GetSummary(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedGetDashboard, err)
	}

	return presenters.SuccessResponse(c, summary, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}
