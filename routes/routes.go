package routes

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"eventdesk/forms"
	"eventdesk/middlewares"
	"eventdesk/models"
	"eventdesk/types"
	"eventdesk/utils"
)

// Dependency container for the handlers.
type deps struct {
	events models.EventService
	users  models.UserRepository
	audit  models.AuditRepository // optional
	inv    *utils.QueryCache      // optional
}

// RegisterRoutes wires the admin endpoints. main passes in the upstream
// event service, the local repositories, Redis for quota, and the query
// cache the mutation handlers invalidate.
func RegisterRoutes(
	server *gin.Engine,
	e models.EventService,
	u models.UserRepository,
	a models.AuditRepository,
	rdb *redis.Client,
	inv *utils.QueryCache,
) {
	d := &deps{events: e, users: u, audit: a, inv: inv}

	// Global per-IP limiter (20 rps / 40 burst).
	globalLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     20,
		Burst:   40,
		IdleTTL: 3 * time.Minute,
	})
	server.Use(globalLimiter.Middleware(func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}))

	// Stricter per-IP limit on the credential endpoints.
	authLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     0.5,
		Burst:   2,
		IdleTTL: 10 * time.Minute,
	})
	server.POST("/signup",
		authLimiter.Middleware(func(c *gin.Context) string { return "signup:" + c.ClientIP() }),
		d.signup,
	)
	server.POST("/login",
		authLimiter.Middleware(func(c *gin.Context) string { return "login:" + c.ClientIP() }),
		d.login,
	)

	// Read-only view endpoints are public; mutations sit behind auth.
	server.GET("/ui/events", d.listEvents)
	server.POST("/ui/events/editor", d.seedEditor)

	auth := server.Group("/")
	auth.Use(middlewares.Authenticate)

	userLimiter := middlewares.NewRateLimiter(middlewares.LimiterConfig{
		RPS:     5,
		Burst:   10,
		IdleTTL: 10 * time.Minute,
	})
	auth.Use(userLimiter.Middleware(func(c *gin.Context) string {
		return "u:" + strconv.FormatInt(c.GetInt64("userId"), 10)
	}))

	// Daily quota per admin for long-term usage control.
	auth.Use(middlewares.Quota(rdb, middlewares.QuotaRule{
		Limit:  2000,
		Window: 24 * time.Hour,
		KeyFn: func(c *gin.Context) string {
			uid := c.GetInt64("userId")
			if uid == 0 {
				return ""
			}
			return fmt.Sprintf("quota:user:%d:day", uid)
		},
	}))

	auth.POST("/ui/events/save", d.saveEvent)
	auth.POST("/ui/events/delete", d.deleteEvent)
	auth.GET("/ui/audit", d.recentAudit)
}

/* -------------------- List view -------------------- */

func intQuery(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}

// GET /ui/events?pageNumber&pageSize&width
func (d *deps) listEvents(c *gin.Context) {
	pageNumber := intQuery(c, "pageNumber", 1)
	// Snap the size before the fetch so the cache key and the pagination
	// math agree on the same page shape.
	pageSize := types.NormalizePageSize(intQuery(c, "pageSize", types.DefaultPageSize))
	width := intQuery(c, "width", types.DesktopMinWidth)

	resp, err := d.events.List(c.Request.Context(), pageNumber, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message":      "Could not fetch events. Try again later.",
			"notification": types.ErrorNotice(err.Error()),
		})
		return
	}
	if !resp.Success {
		c.JSON(http.StatusBadGateway, gin.H{
			"message":      resp.Message,
			"notification": types.ErrorNotice(resp.Message),
		})
		return
	}

	c.JSON(http.StatusOK, types.BuildListView(resp.Result, width))
}

/* -------------------- Editor -------------------- */

// POST /ui/events/editor
// Body: {"event": {...}} to edit, {"event": null} to create.
func (d *deps) seedEditor(c *gin.Context) {
	var req struct {
		Event *models.Event `json:"event"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
			return
		}
	}
	c.JSON(http.StatusOK, forms.NewEventForm(req.Event).View())
}

/* -------------------- Mutations -------------------- */

// POST /ui/events/save
func (d *deps) saveEvent(c *gin.Context) {
	var payload models.Event
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	form := forms.NewEventForm(&payload)
	ev, ok := form.Submit()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Validation failed.",
			"errors":  form.Errors,
		})
		return
	}

	action := "update"
	if ev.ID == models.SentinelID {
		action = "create"
	}

	resp, err := d.events.Save(c.Request.Context(), ev)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"message":      err.Error(),
			"notification": types.ErrorNotice(err.Error()),
		})
		return
	}

	// Invalidate regardless of the success flag; the next list render
	// refetches the current page either way.
	if d.inv != nil {
		d.inv.InvalidateEvents(c.Request.Context())
	}
	d.recordAudit(c, action, ev.ID, resp.Success, resp.Message)

	c.JSON(http.StatusOK, gin.H{
		"success":      resp.Success,
		"message":      resp.Message,
		"result":       resp.Result,
		"notification": types.NoticeFor(resp.Success, resp.Message),
	})
}

// POST /ui/events/delete
func (d *deps) deleteEvent(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Event id is required."})
		return
	}

	resp, err := d.events.Delete(c.Request.Context(), req.ID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"message":      err.Error(),
			"notification": types.ErrorNotice(err.Error()),
		})
		return
	}

	if d.inv != nil {
		d.inv.InvalidateEvents(c.Request.Context())
	}
	d.recordAudit(c, "delete", req.ID, resp.Success, resp.Message)

	c.JSON(http.StatusOK, gin.H{
		"success":      resp.Success,
		"message":      resp.Message,
		"result":       resp.Result,
		"notification": types.NoticeFor(resp.Success, resp.Message),
	})
}

func (d *deps) recordAudit(c *gin.Context, action, eventID string, success bool, message string) {
	if d.audit == nil {
		return
	}
	_ = d.audit.Record(&models.AuditEntry{
		Action:  action,
		EventID: eventID,
		ActorID: c.GetInt64("userId"),
		Success: success,
		Message: message,
	})
}

// GET /ui/audit?limit
func (d *deps) recentAudit(c *gin.Context) {
	if d.audit == nil {
		c.JSON(http.StatusOK, gin.H{"entries": []models.AuditEntry{}})
		return
	}
	limit := int64(intQuery(c, "limit", 50))
	entries, err := d.audit.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not fetch audit entries."})
		return
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

/* --------------------- Auth --------------------- */

// POST /signup
func (d *deps) signup(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	u := models.User{Email: req.Email, Password: req.Password}
	if err := d.users.Create(&u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not save user."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "user created successfully"})
}

// POST /login
func (d *deps) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Could not parse request data."})
		return
	}

	user, err := d.users.ValidateCredentials(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Could not authenticate user."})
		return
	}

	token, err := utils.GenerateToken(user.Email, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not authenticate user."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful!", "token": token})
}
