package controllers

import (
	"net/http"
	"time"

	"detailpro-backend/config"
	"detailpro-backend/models"
	"detailpro-backend/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns the headline numbers for the dashboard page
func GetDashboardStats(c *gin.Context) {
	now := time.Now()
	today := utils.BeginningOfDay(now)
	tomorrow := today.AddDate(0, 0, 1)
	firstOfMonth := utils.BeginningOfMonth(now)

	var totalCustomers int64
	if err := config.DB.Model(&models.Customer{}).
		Where("is_active = ?", true).Count(&totalCustomers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get dashboard stats")
		return
	}

	var jobsToday, pendingJobs, inProgressJobs int64
	config.DB.Model(&models.Job{}).
		Where("scheduled_date >= ? AND scheduled_date < ? AND is_active = ?", today, tomorrow, true).
		Count(&jobsToday)
	config.DB.Model(&models.Job{}).
		Where("status = ? AND is_active = ?", models.JobPending, true).Count(&pendingJobs)
	config.DB.Model(&models.Job{}).
		Where("status = ? AND is_active = ?", models.JobInProgress, true).Count(&inProgressJobs)

	var revenueToday, revenueMonth float64
	config.DB.Model(&models.Invoice{}).
		Where("status = ? AND paid_date >= ? AND is_active = ?", models.InvoicePaid, today, true).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&revenueToday)
	config.DB.Model(&models.Invoice{}).
		Where("status = ? AND paid_date >= ? AND is_active = ?", models.InvoicePaid, firstOfMonth, true).
		Select("COALESCE(SUM(total_amount), 0)").Scan(&revenueMonth)

	var unpaidInvoices int64
	config.DB.Model(&models.Invoice{}).
		Where("status IN ? AND is_active = ?",
			[]string{models.InvoicePending, models.InvoiceOverdue, models.InvoicePartial}, true).
		Count(&unpaidInvoices)

	var lowStockItems int64
	config.DB.Model(&models.InventoryItem{}).
		Where("quantity <= min_quantity AND is_active = ?", true).
		Count(&lowStockItems)

	c.JSON(http.StatusOK, gin.H{
		"totalCustomers": totalCustomers,
		"jobsToday":      jobsToday,
		"pendingJobs":    pendingJobs,
		"inProgressJobs": inProgressJobs,
		"revenueToday":   revenueToday,
		"revenueMonth":   revenueMonth,
		"unpaidInvoices": unpaidInvoices,
		"lowStockItems":  lowStockItems,
	})
}

// AnalyticsController handles the revenue analytics endpoint
type AnalyticsController struct{}

// AnalyticsSummary is the analytics payload
type AnalyticsSummary struct {
	CurrentMonthRevenue   float64           `json:"currentMonthRevenue"`
	MonthGrowth           float64           `json:"monthGrowth"`
	CurrentQuarterRevenue float64           `json:"currentQuarterRevenue"`
	QuarterGrowth         float64           `json:"quarterGrowth"`
	CurrentYearRevenue    float64           `json:"currentYearRevenue"`
	YearGrowth            float64           `json:"yearGrowth"`
	TopJobTypes           []JobTypeSummary  `json:"topJobTypes"`
	TopCustomers          []CustomerSummary `json:"topCustomers"`
	QuickStats            QuickStatistics   `json:"quickStats"`
}

type JobTypeSummary struct {
	JobType string  `json:"jobType"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type CustomerSummary struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Visits    int     `json:"visits"`
	Spent     float64 `json:"spent"`
}

type QuickStatistics struct {
	TotalCustomers  int     `json:"totalCustomers"`
	TotalInvoices   int     `json:"totalInvoices"`
	AvgInvoiceValue float64 `json:"avgInvoiceValue"`
	AvgMonthlyJobs  float64 `json:"avgMonthlyJobs"`
}

// GetAnalytics returns the revenue and growth summary
func (ac *AnalyticsController) GetAnalytics(c *gin.Context) {
	now := time.Now()
	firstOfMonth := utils.BeginningOfMonth(now)
	nextMonth := firstOfMonth.AddDate(0, 1, 0)

	currentMonthRevenue, err := ac.getRevenue(firstOfMonth, nextMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}
	lastMonthRevenue, err := ac.getRevenue(firstOfMonth.AddDate(0, -1, 0), firstOfMonth)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	quarterStart := ac.quarterStart(now)
	currentQuarterRevenue, err := ac.getRevenue(quarterStart, quarterStart.AddDate(0, 3, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly revenue")
		return
	}
	lastQuarterRevenue, err := ac.getRevenue(quarterStart.AddDate(0, -3, 0), quarterStart)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter revenue")
		return
	}

	yearStart := utils.BeginningOfYear(now)
	currentYearRevenue, err := ac.getRevenue(yearStart, yearStart.AddDate(1, 0, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}
	lastYearRevenue, err := ac.getRevenue(yearStart.AddDate(-1, 0, 0), yearStart)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	topJobTypes, err := ac.getTopJobTypes(firstOfMonth, nextMonth, 5)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top job types")
		return
	}

	topCustomers, err := ac.getTopCustomers(firstOfMonth, nextMonth, 5)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top customers")
		return
	}

	quickStats, err := ac.getQuickStatistics()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quick statistics")
		return
	}

	c.JSON(http.StatusOK, AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           ac.growthPercentage(currentMonthRevenue, lastMonthRevenue),
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         ac.growthPercentage(currentQuarterRevenue, lastQuarterRevenue),
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            ac.growthPercentage(currentYearRevenue, lastYearRevenue),
		TopJobTypes:           topJobTypes,
		TopCustomers:          topCustomers,
		QuickStats:            quickStats,
	})
}

func (ac *AnalyticsController) getRevenue(start, end time.Time) (float64, error) {
	var total float64
	err := config.DB.Model(&models.Invoice{}).
		Where("status = ? AND paid_date >= ? AND paid_date < ? AND is_active = ?",
			models.InvoicePaid, start, end, true).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

func (ac *AnalyticsController) quarterStart(date time.Time) time.Time {
	quarter := (int(date.Month()) - 1) / 3
	startMonth := time.Month(quarter*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func (ac *AnalyticsController) growthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

func (ac *AnalyticsController) getTopJobTypes(start, end time.Time, limit int) ([]JobTypeSummary, error) {
	var jobTypes []JobTypeSummary

	err := config.DB.Table("jobs").
		Select("job_type, COUNT(*) as count, SUM(total_amount) as revenue").
		Where("status = ? AND scheduled_date >= ? AND scheduled_date < ? AND is_active = ?",
			models.JobCompleted, start, end, true).
		Group("job_type").
		Order("revenue DESC").
		Limit(limit).
		Scan(&jobTypes).Error

	return jobTypes, err
}

func (ac *AnalyticsController) getTopCustomers(start, end time.Time, limit int) ([]CustomerSummary, error) {
	var customers []CustomerSummary

	err := config.DB.Table("invoices").
		Select("customers.first_name, customers.last_name, COUNT(invoices.id) as visits, SUM(invoices.total_amount) as spent").
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.created_at >= ? AND invoices.created_at < ? AND invoices.is_active = ? AND customers.is_active = ?",
			start, end, true, true).
		Group("customers.id, customers.first_name, customers.last_name").
		Order("spent DESC").
		Limit(limit).
		Scan(&customers).Error

	return customers, err
}

func (ac *AnalyticsController) getQuickStatistics() (QuickStatistics, error) {
	var stats QuickStatistics

	var totalCustomers int64
	if err := config.DB.Model(&models.Customer{}).
		Where("is_active = ?", true).Count(&totalCustomers).Error; err != nil {
		return stats, err
	}
	stats.TotalCustomers = int(totalCustomers)

	var totalInvoices int64
	if err := config.DB.Model(&models.Invoice{}).
		Where("is_active = ?", true).Count(&totalInvoices).Error; err != nil {
		return stats, err
	}
	stats.TotalInvoices = int(totalInvoices)

	var totalRevenue float64
	if err := config.DB.Model(&models.Invoice{}).
		Where("is_active = ?", true).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return stats, err
	}
	if stats.TotalInvoices > 0 {
		stats.AvgInvoiceValue = totalRevenue / float64(stats.TotalInvoices)
	}

	// Average jobs per month since the first job on record
	var totalJobs int64
	var firstJob models.Job
	if err := config.DB.Model(&models.Job{}).
		Where("is_active = ?", true).Count(&totalJobs).Error; err != nil {
		return stats, err
	}
	if totalJobs > 0 {
		if err := config.DB.Where("is_active = ?", true).
			Order("created_at ASC").First(&firstJob).Error; err != nil {
			return stats, err
		}
		months := time.Since(firstJob.CreatedAt).Hours()/24/30 + 1
		stats.AvgMonthlyJobs = float64(totalJobs) / months
	}

	return stats, nil
}
