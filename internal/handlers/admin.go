package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/oknastroy/internal/models"
)

// AdminHandler manages dashboard endpoints for Admin/Manager.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// DashboardStats returns aggregate statistics for the admin dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalUsers int64
	if err := h.db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return err
	}

	var totalProducts int64
	if err := h.db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		return err
	}

	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.Status] = sc.Count
	}

	// Revenue excludes cancelled orders.
	var totalRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("status != ?", models.StatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	var pendingAcceptance int64
	if err := h.db.Model(&models.Order{}).
		Where("assembler_id IS NOT NULL AND acceptance_status = ?", models.AcceptancePending).
		Count(&pendingAcceptance).Error; err != nil {
		return err
	}

	var rejected int64
	if err := h.db.Model(&models.Order{}).
		Where("acceptance_status = ?", models.AcceptanceRejected).
		Count(&rejected).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_users":        totalUsers,
			"total_products":     totalProducts,
			"total_orders":       totalOrders,
			"total_revenue":      totalRevenue,
			"orders_by_status":   ordersByStatus,
			"pending_acceptance": pendingAcceptance,
			"rejected_orders":    rejected,
		},
	})
}

// RecentOrders returns the most recent 5 orders for the dashboard.
func (h *AdminHandler) RecentOrders(c *fiber.Ctx) error {
	var recent []models.Order
	if err := h.db.Preload("Items").
		Order("created_at desc").
		Limit(5).
		Find(&recent).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    recent,
	})
}
