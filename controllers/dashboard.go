// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"gestion-salon-backend/config"
	"gestion-salon-backend/models"
	"gestion-salon-backend/utils"

	"github.com/gin-gonic/gin"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func GetDashboardOverview(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	now := time.Now()
	startOfDay := utils.BeginningOfDay(now)
	endOfDay := startOfDay.Add(24 * time.Hour)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// Today's appointments, earliest first. Service lines snapshot their
	// name and price, so no join beyond the line rows is needed.
	var todayAppointments []models.Appointment
	if err := config.DB.Preload("Client").Preload("Services").
		Where("salon_id = ? AND scheduled_at >= ? AND scheduled_at < ?", salonUUID, startOfDay, endOfDay).
		Order("scheduled_at ASC").
		Find(&todayAppointments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load today's appointments")
		return
	}

	// Status breakdown for today
	var statusCounts []StatusCount
	config.DB.Model(&models.Appointment{}).
		Select("status, COUNT(*) as count").
		Where("salon_id = ? AND scheduled_at >= ? AND scheduled_at < ?", salonUUID, startOfDay, endOfDay).
		Group("status").
		Scan(&statusCounts)

	// Deposits requested but not yet paid on live appointments
	var pendingDeposits int64
	config.DB.Model(&models.Appointment{}).
		Where("salon_id = ? AND deposit_requested = ? AND deposit_paid = ? AND status IN ?",
			salonUUID, true, false, []string{models.StatusPending, models.StatusConfirmed}).
		Count(&pendingDeposits)

	var pendingDepositAmount int64
	config.DB.Model(&models.Appointment{}).
		Where("salon_id = ? AND deposit_requested = ? AND deposit_paid = ? AND status IN ?",
			salonUUID, true, false, []string{models.StatusPending, models.StatusConfirmed}).
		Select("COALESCE(SUM(deposit_amount), 0)").Scan(&pendingDepositAmount)

	// Today's revenue (finalized sales)
	var todayRevenue int64
	config.DB.Model(&models.Sale{}).
		Where("salon_id = ? AND sale_date >= ? AND sale_date < ?", salonUUID, startOfDay, endOfDay).
		Select("COALESCE(SUM(total_ttc), 0)").Scan(&todayRevenue)

	// This month's revenue
	var monthlyRevenue int64
	config.DB.Model(&models.Sale{}).
		Where("salon_id = ? AND sale_date >= ?", salonUUID, firstOfMonth).
		Select("COALESCE(SUM(total_ttc), 0)").Scan(&monthlyRevenue)

	// Products running low in the retail pool
	var lowStock []models.Product
	config.DB.Where("salon_id = ? AND is_active = ? AND stock_for_sale <= ?", salonUUID, true, 3).
		Order("stock_for_sale ASC").
		Limit(5).
		Find(&lowStock)

	// Next confirmed appointments after today
	var upcoming []models.Appointment
	config.DB.Preload("Client").
		Where("salon_id = ? AND scheduled_at >= ? AND status IN ?",
			salonUUID, endOfDay, []string{models.StatusPending, models.StatusConfirmed}).
		Order("scheduled_at ASC").
		Limit(5).
		Find(&upcoming)

	c.JSON(http.StatusOK, gin.H{
		"todayAppointments": todayAppointments,
		"statusCounts":      statusCounts,
		"pendingDeposits": gin.H{
			"count":  pendingDeposits,
			"amount": pendingDepositAmount,
		},
		"todayRevenue":         todayRevenue,
		"monthlyRevenue":       monthlyRevenue,
		"lowStock":             lowStock,
		"upcomingAppointments": upcoming,
	})
}
