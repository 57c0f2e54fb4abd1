package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/prakasam-dev/daybook-api/internal/middleware"
	"github.com/prakasam-dev/daybook-api/internal/service"
)

// Handlers bundles every route handler of the API.
type Handlers struct {
	Auth       *AuthHandler
	Event      *EventHandler
	Attendance *AttendanceHandler
	CSR        *CSRHandler
	Steps      *StepsHandler
	Goal       *GoalHandler
	Reminder   *ReminderHandler
	Note       *NoteHandler
	Sheet      *SheetHandler
	Slack      *SlackHandler
	Backup     *BackupHandler
}

// Register wires all routes under the API prefix. Everything except
// login, downloads and the probes sits behind the JWT middleware.
func Register(r *gin.Engine, prefix string, h Handlers, authService *service.AuthService, metricsService *service.MetricsService) {
	if prefix == "" {
		prefix = "/api/v1"
	}

	r.GET("/metrics", gin.WrapH(metricsService.Handler()))

	api := r.Group(prefix)
	api.Use(middleware.Metrics(metricsService))

	api.POST("/auth/login", h.Auth.Login)
	api.GET("/downloads/:token", h.Sheet.Download)

	protected := api.Group("")
	protected.Use(middleware.JWT(authService))

	protected.GET("/auth/me", h.Auth.Me)

	events := protected.Group("/events")
	{
		events.GET("", h.Event.List)
		events.GET("/stats", h.Event.Stats)
		events.POST("", h.Event.Create)
		events.POST("/conflicts", h.Event.CheckConflicts)
		events.GET("/:id", h.Event.Get)
		events.PUT("/:id", h.Event.Update)
		events.POST("/:id/reschedule", h.Event.Reschedule)
		events.DELETE("/:id", h.Event.Delete)
	}

	attendance := protected.Group("/attendance")
	{
		attendance.GET("", h.Attendance.List)
		attendance.GET("/week", h.Attendance.Week)
		attendance.POST("", h.Attendance.Mark)
		attendance.DELETE("/:date", h.Attendance.Delete)
	}

	csr := protected.Group("/csr")
	{
		csr.GET("", h.CSR.List)
		csr.GET("/options", h.CSR.Options)
		csr.POST("", h.CSR.Add)
		csr.PUT("/:index", h.CSR.Update)
		csr.DELETE("/:index", h.CSR.Delete)
	}

	steps := protected.Group("/steps")
	{
		steps.GET("", h.Steps.List)
		steps.GET("/trend", h.Steps.Trend)
		steps.POST("", h.Steps.Add)
		steps.PUT("/:date", h.Steps.Update)
		steps.DELETE("/:date", h.Steps.Delete)
	}

	goals := protected.Group("/goals")
	{
		goals.GET("", h.Goal.List)
		goals.POST("", h.Goal.Add)
		goals.PUT("/:id", h.Goal.Update)
		goals.PATCH("/:id/status", h.Goal.SetStatus)
		goals.DELETE("/:id", h.Goal.Delete)
	}

	reminders := protected.Group("/reminders")
	{
		reminders.GET("", h.Reminder.List)
		reminders.GET("/due", h.Reminder.Due)
		reminders.POST("", h.Reminder.Add)
		reminders.PUT("/:id", h.Reminder.Update)
		reminders.DELETE("/:id", h.Reminder.Delete)
	}

	notes := protected.Group("/notes")
	{
		notes.GET("", h.Note.List)
		notes.GET("/:id", h.Note.Get)
		notes.POST("", h.Note.Create)
		notes.PUT("/:id", h.Note.Update)
		notes.DELETE("/:id", h.Note.Delete)
	}

	sheets := protected.Group("/sheets")
	{
		sheets.GET("", h.Sheet.List)
		sheets.POST("/import", h.Sheet.Import)
		sheets.GET("/:id", h.Sheet.Get)
		sheets.PATCH("/:id/cell", h.Sheet.EditCell)
		sheets.POST("/:id/rows", h.Sheet.AddRow)
		sheets.POST("/:id/export", h.Sheet.Export)
		sheets.DELETE("/:id", h.Sheet.Delete)
	}

	protected.POST("/schedule/print", h.Sheet.PrintSchedule)

	slack := protected.Group("/slack")
	{
		slack.GET("/status", h.Slack.Status)
		slack.POST("/digest", h.Slack.SendDigest)
	}

	protected.GET("/backup", h.Backup.Snapshot)
}
