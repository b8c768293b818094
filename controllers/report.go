// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"gestion-salon-backend/config"
	"gestion-salon-backend/models"
	"gestion-salon-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the Analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   int64                 `json:"currentMonthRevenue"`
	MonthGrowth           float64               `json:"monthGrowth"`
	CurrentQuarterRevenue int64                 `json:"currentQuarterRevenue"`
	QuarterGrowth         float64               `json:"quarterGrowth"`
	CurrentYearRevenue    int64                 `json:"currentYearRevenue"`
	YearGrowth            float64               `json:"yearGrowth"`
	TopServices           []ServiceSummary      `json:"topServices"`
	TopClients            []ClientSummary       `json:"topClients"`
	PaymentInstruments    []InstrumentBreakdown `json:"paymentInstruments"`
	AppointmentStats      AppointmentStatistics `json:"appointmentStats"`
}

type ServiceSummary struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Revenue int64  `json:"revenue"`
}

type ClientSummary struct {
	Name   string `json:"name"`
	Visits int    `json:"visits"`
	Spent  int64  `json:"spent"`
}

type InstrumentBreakdown struct {
	Instrument string `json:"instrument"`
	Count      int    `json:"count"`
	Total      int64  `json:"total"`
}

type AppointmentStatistics struct {
	Total         int64   `json:"total"`
	Completed     int64   `json:"completed"`
	Cancelled     int64   `json:"cancelled"`
	NoShows       int64   `json:"noShows"`
	NoShowRate    float64 `json:"noShowRate"`
	AvgSaleAmount int64   `json:"avgSaleAmount"`
}

func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	salonUUID, ok := salonIDFromContext(c)
	if !ok {
		return
	}

	// Get current time
	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	// Calculate date ranges
	firstOfMonth := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	// Get revenue reports
	currentMonthRevenue, err := rc.getRevenue(salonUUID, firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}

	lastMonthRevenue, err := rc.getRevenue(salonUUID,
		firstOfMonth.AddDate(0, -1, 0),
		lastOfMonth.AddDate(0, -1, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	currentQuarterRevenue, err := rc.getRevenue(salonUUID,
		rc.getQuarterStart(now),
		rc.getQuarterEnd(now))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly revenue")
		return
	}

	lastQuarterRevenue, err := rc.getRevenue(salonUUID,
		rc.getQuarterStart(now).AddDate(0, -3, 0),
		rc.getQuarterEnd(now).AddDate(0, -3, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter revenue")
		return
	}

	currentYearRevenue, err := rc.getRevenue(salonUUID,
		time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}

	lastYearRevenue, err := rc.getRevenue(salonUUID,
		time.Date(currentYear-1, 1, 1, 0, 0, 0, 0, currentLocation),
		time.Date(currentYear-1, 12, 31, 23, 59, 59, 0, currentLocation))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	// Calculate growth percentages
	monthGrowth := rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue)
	quarterGrowth := rc.calculateGrowthPercentage(currentQuarterRevenue, lastQuarterRevenue)
	yearGrowth := rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue)

	// Get top services
	topServices, err := rc.getTopServices(salonUUID, firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top services")
		return
	}

	// Get top clients
	topClients, err := rc.getTopClients(salonUUID, firstOfMonth, lastOfMonth, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top clients")
		return
	}

	// Payment instrument breakdown for the month
	instruments, err := rc.getInstrumentBreakdown(salonUUID, firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get payment breakdown")
		return
	}

	// Appointment statistics
	appointmentStats, err := rc.getAppointmentStatistics(salonUUID, firstOfMonth, lastOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get appointment statistics")
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           monthGrowth,
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         quarterGrowth,
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            yearGrowth,
		TopServices:           topServices,
		TopClients:            topClients,
		PaymentInstruments:    instruments,
		AppointmentStats:      appointmentStats,
	}

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

func (rc *ReportController) getRevenue(salonID uuid.UUID, start, end time.Time) (int64, error) {
	var total int64
	err := config.DB.Model(&models.Sale{}).
		Where("salon_id = ? AND sale_date BETWEEN ? AND ?", salonID, start, end).
		Select("COALESCE(SUM(total_ttc), 0)").
		Scan(&total).Error
	return total, err
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) getQuarterEnd(date time.Time) time.Time {
	return rc.getQuarterStart(date).AddDate(0, 3, -1)
}

func (rc *ReportController) calculateGrowthPercentage(current, previous int64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (float64(current-previous) / float64(previous)) * 100
}

func (rc *ReportController) getTopServices(salonID uuid.UUID, start, end time.Time, limit int) ([]ServiceSummary, error) {
	var services []ServiceSummary

	err := config.DB.Table("sale_items").
		Select("sale_items.label as name, SUM(sale_items.quantity) as count, SUM(sale_items.total_price) as revenue").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.salon_id = ? AND sales.sale_date BETWEEN ? AND ? AND sale_items.kind = ?",
			salonID, start, end, models.SaleItemService).
		Group("sale_items.label").
		Order("revenue DESC").
		Limit(limit).
		Scan(&services).Error

	return services, err
}

func (rc *ReportController) getTopClients(salonID uuid.UUID, start, end time.Time, limit int) ([]ClientSummary, error) {
	var clients []ClientSummary

	err := config.DB.Table("sales").
		Select("clients.name, COUNT(sales.id) as visits, SUM(sales.total_ttc) as spent").
		Joins("JOIN clients ON clients.id = sales.client_id").
		Where("sales.salon_id = ? AND sales.sale_date BETWEEN ? AND ? AND clients.deleted_at IS NULL",
			salonID, start, end).
		Group("clients.name").
		Order("spent DESC").
		Limit(limit).
		Scan(&clients).Error

	return clients, err
}

func (rc *ReportController) getInstrumentBreakdown(salonID uuid.UUID, start, end time.Time) ([]InstrumentBreakdown, error) {
	var breakdown []InstrumentBreakdown

	err := config.DB.Table("payments").
		Select("instrument, COUNT(id) as count, SUM(amount) as total").
		Where("salon_id = ? AND paid_at BETWEEN ? AND ? AND deleted_at IS NULL", salonID, start, end).
		Group("instrument").
		Order("total DESC").
		Scan(&breakdown).Error

	return breakdown, err
}

func (rc *ReportController) getAppointmentStatistics(salonID uuid.UUID, start, end time.Time) (AppointmentStatistics, error) {
	var stats AppointmentStatistics

	base := func() *gorm.DB {
		return config.DB.Model(&models.Appointment{}).
			Where("salon_id = ? AND scheduled_at BETWEEN ? AND ?", salonID, start, end)
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := base().Where("status = ?", models.StatusCompleted).Count(&stats.Completed).Error; err != nil {
		return stats, err
	}
	if err := base().Where("status = ?", models.StatusCancelled).Count(&stats.Cancelled).Error; err != nil {
		return stats, err
	}
	if err := base().Where("status = ?", models.StatusNoShow).Count(&stats.NoShows).Error; err != nil {
		return stats, err
	}

	if stats.Total > 0 {
		stats.NoShowRate = float64(stats.NoShows) / float64(stats.Total) * 100
	}

	// Average ticket over finalized sales in the period
	var saleCount int64
	var saleTotal int64
	if err := config.DB.Model(&models.Sale{}).
		Where("salon_id = ? AND sale_date BETWEEN ? AND ?", salonID, start, end).
		Count(&saleCount).Error; err != nil {
		return stats, err
	}
	if saleCount > 0 {
		if err := config.DB.Model(&models.Sale{}).
			Where("salon_id = ? AND sale_date BETWEEN ? AND ?", salonID, start, end).
			Select("COALESCE(SUM(total_ttc), 0)").
			Scan(&saleTotal).Error; err != nil {
			return stats, err
		}
		stats.AvgSaleAmount = saleTotal / saleCount
	}

	return stats, nil
}
