package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"cpms-admin-api/config"
	"cpms-admin-api/models"
	"cpms-admin-api/services"

	"github.com/gin-gonic/gin"
)

// reminderJob is the process-wide job instance shared with the scheduler so
// manual and scheduled triggers see the same ledger.
var reminderJob *services.ReminderJobService

// SetReminderJob wires the job instance used by the reminder endpoints.
func SetReminderJob(job *services.ReminderJobService) {
	reminderJob = job
}

// GetReminderRuns lists recent reminder runs, newest first.
func GetReminderRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 200 {
		limit = 20
	}

	var runs []models.ReminderRun
	if err := config.DB.Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load reminder runs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// GetReminderRun returns one reminder run by id.
func GetReminderRun(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid run id"})
		return
	}

	var run models.ReminderRun
	if err := config.DB.First(&run, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reminder run not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"run": run})
}

// GetReminderLedger lists the durable ledger records for a calendar day
// (default today). Only meaningful with REMINDER_LEDGER=db; the in-memory
// ledger is process-local and not inspectable here.
func GetReminderLedger(c *gin.Context) {
	day := c.Query("day")
	if day == "" {
		day = services.CalendarDay(time.Now(), services.ReminderLocation())
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day must be YYYY-MM-DD"})
		return
	}

	var records []models.ReminderRecord
	if err := config.DB.Where("calendar_day = ?", day).Order("sent_at ASC").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ledger records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"day": day, "records": records})
}

// TriggerReminderRun starts a manual scan in the background. The named lock
// inside the job keeps it from overlapping a scheduled run.
func TriggerReminderRun(c *gin.Context) {
	if reminderJob == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Reminder job not initialized"})
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
		defer cancel()

		_, err := reminderJob.RunDaily(ctx, &services.ReminderJobInput{
			TriggerSource: "manual",
			LockName:      services.ReminderJobLockName,
			RecordRun:     true,
		})
		if err != nil {
			if errors.Is(err, services.ErrReminderJobAlreadyRunning) {
				log.Println("Manual reminder run skipped: job already running")
				return
			}
			log.Printf("Manual reminder run failed: %v", err)
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"message": "Reminder scan started"})
}
