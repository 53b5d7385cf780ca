package main

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sola-app/sola/pkg/api"
	"github.com/sola-app/sola/pkg/metrics"
)

type handler struct {
	state *state
	log   *slog.Logger
}

func newRouter(st *state, log *slog.Logger) *gin.Engine {
	if log == nil {
		log = slog.Default()
	}
	h := &handler{state: st, log: log}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestMetrics())

	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/api/xpstate", h.getXPState)
	r.GET("/api/day/status", h.getDayStatus)
	r.POST("/api/day/complete", h.completeDay)

	r.GET("/api/mission", h.getMission)
	r.POST("/api/mission", h.saveMission)
	r.POST("/api/mission/done", h.setMissionDone)

	r.GET("/api/mood/:date", h.getMood)
	r.POST("/api/mood", h.logMood)

	r.GET("/api/habits", h.listHabits)
	r.POST("/api/habits", h.createHabit)
	r.POST("/api/habits/:id/check", h.checkHabit)
	r.DELETE("/api/habits/:id", h.deleteHabit)

	r.GET("/api/tasks", h.listTasks)
	r.POST("/api/tasks", h.createTask)
	r.PUT("/api/tasks/:id", h.updateTask)
	r.DELETE("/api/tasks/:id", h.deleteTask)

	r.GET("/api/notes", h.listNotes)
	r.POST("/api/notes", h.createNote)
	r.PUT("/api/notes/:id", h.updateNote)
	r.DELETE("/api/notes/:id", h.deleteNote)

	r.GET("/api/achievements", h.listAchievements)
	r.GET("/api/weekly", h.getWeekly)
	r.POST("/api/weekly/bonus", h.claimWeeklyBonus)

	return r
}

func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()))
		metrics.RecordRequestDuration(c.Request.Method, route, time.Since(start).Seconds())
	}
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) today() string {
	return h.state.now().UTC().Format("2006-01-02")
}

// dateOrToday resolves the optional ?d= query parameter.
func (h *handler) dateOrToday(c *gin.Context) string {
	if d := c.Query("d"); d != "" {
		return d
	}
	return h.today()
}

func (h *handler) getXPState(c *gin.Context) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	c.JSON(http.StatusOK, h.state.xpState())
}

func (h *handler) getDayStatus(c *gin.Context) {
	date := h.dateOrToday(c)

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	c.JSON(http.StatusOK, api.DayStatus{
		Date:       date,
		Completed:  h.state.day(date).Completed,
		Evaluation: h.state.evaluate(date),
	})
}

func (h *handler) completeDay(c *gin.Context) {
	var req api.DayComplete
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Date == "" {
		req.Date = h.today()
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	h.state.completeDay(req.Date)
	h.log.Info("day completed", "date", req.Date, "streak", h.state.streak)
	c.JSON(http.StatusOK, api.DayStatus{
		Date:       req.Date,
		Completed:  true,
		Evaluation: h.state.evaluate(req.Date),
	})
}

func (h *handler) getMission(c *gin.Context) {
	date := h.dateOrToday(c)

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	m := h.state.day(date).Mission
	if m == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *handler) saveMission(c *gin.Context) {
	var req api.MissionUpsert
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Date == "" {
		req.Date = h.today()
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	m := &api.Mission{Date: req.Date, Text: req.Text, Done: req.Done}
	h.state.day(req.Date).Mission = m
	c.JSON(http.StatusOK, m)
}

func (h *handler) setMissionDone(c *gin.Context) {
	var req api.MissionDone
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Date == "" {
		req.Date = h.today()
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	m := h.state.day(req.Date).Mission
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no mission for " + req.Date})
		return
	}
	if req.Done && !m.Done {
		h.state.award(req.Date, xpMission)
	}
	m.Done = req.Done
	h.state.checkAchievements(req.Date)
	c.JSON(http.StatusOK, m)
}

func (h *handler) getMood(c *gin.Context) {
	date := c.Param("date")

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	d, ok := h.state.days[date]
	if !ok || d.MoodRating == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no mood logged for " + date})
		return
	}
	c.JSON(http.StatusOK, api.Mood{Date: date, Rating: d.MoodRating})
}

func (h *handler) logMood(c *gin.Context) {
	var req api.MoodUpsert
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}
	if req.Date == "" {
		req.Date = h.today()
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	d := h.state.day(req.Date)
	if d.MoodRating == 0 {
		h.state.award(req.Date, xpMoodLog)
	}
	d.MoodRating = req.Rating
	c.JSON(http.StatusOK, api.Mood{Date: req.Date, Rating: req.Rating})
}

func (h *handler) listHabits(c *gin.Context) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	out := make([]api.Habit, 0, len(h.state.habitOrder))
	for _, id := range h.state.habitOrder {
		hr := h.state.habits[id]
		out = append(out, api.Habit{ID: hr.ID, Name: hr.Name, Active: hr.Active})
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) createHabit(c *gin.Context) {
	var req api.HabitCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	hr := &habitRecord{ID: uuid.NewString(), Name: req.Name, Active: req.Active}
	h.state.habits[hr.ID] = hr
	h.state.habitOrder = append(h.state.habitOrder, hr.ID)
	c.JSON(http.StatusCreated, api.Habit{ID: hr.ID, Name: hr.Name, Active: hr.Active})
}

func (h *handler) checkHabit(c *gin.Context) {
	id := c.Param("id")
	var req api.HabitCheck
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Date == "" {
		req.Date = h.today()
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	hr, ok := h.state.habits[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		return
	}
	d := h.state.day(req.Date)
	if req.Completed && !d.HabitChecks[id] {
		h.state.award(req.Date, xpHabitCheck)
	}
	d.HabitChecks[id] = req.Completed
	c.JSON(http.StatusOK, api.Habit{ID: hr.ID, Name: hr.Name, Active: hr.Active})
}

func (h *handler) deleteHabit(c *gin.Context) {
	id := c.Param("id")

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	if _, ok := h.state.habits[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		return
	}
	delete(h.state.habits, id)
	h.state.habitOrder = removeID(h.state.habitOrder, id)
	c.Status(http.StatusNoContent)
}

func (h *handler) listTasks(c *gin.Context) {
	date := h.dateOrToday(c)

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	out := make([]api.Task, 0)
	for _, id := range h.state.taskOrder {
		t := h.state.tasks[id]
		if t.Date == date {
			out = append(out, *t)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) createTask(c *gin.Context) {
	var req api.TaskCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	if req.Date == "" {
		req.Date = h.today()
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	t := &api.Task{ID: uuid.NewString(), Title: req.Title, Date: req.Date, Status: api.TaskPending}
	h.state.tasks[t.ID] = t
	h.state.taskOrder = append(h.state.taskOrder, t.ID)
	c.JSON(http.StatusCreated, t)
}

func (h *handler) updateTask(c *gin.Context) {
	id := c.Param("id")
	var req api.TaskUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	t, ok := h.state.tasks[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	t.Title = req.Title
	t.Date = req.Date
	t.Status = req.Status
	c.JSON(http.StatusOK, t)
}

func (h *handler) deleteTask(c *gin.Context) {
	id := c.Param("id")

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	if _, ok := h.state.tasks[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	delete(h.state.tasks, id)
	h.state.taskOrder = removeID(h.state.taskOrder, id)
	c.Status(http.StatusNoContent)
}

func (h *handler) listNotes(c *gin.Context) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	out := make([]api.Note, 0, len(h.state.noteOrder))
	for _, id := range h.state.noteOrder {
		out = append(out, *h.state.notes[id])
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) createNote(c *gin.Context) {
	var req api.NoteCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title == "" && req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title or text is required"})
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	n := &api.Note{ID: uuid.NewString(), Title: req.Title, Text: req.Text, Category: req.Category}
	h.state.notes[n.ID] = n
	h.state.noteOrder = append(h.state.noteOrder, n.ID)
	c.JSON(http.StatusCreated, n)
}

func (h *handler) updateNote(c *gin.Context) {
	id := c.Param("id")
	var req api.NoteUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	n, ok := h.state.notes[id]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		return
	}
	n.Title = req.Title
	n.Text = req.Text
	n.Category = req.Category
	c.JSON(http.StatusOK, n)
}

func (h *handler) deleteNote(c *gin.Context) {
	id := c.Param("id")

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	if _, ok := h.state.notes[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		return
	}
	delete(h.state.notes, id)
	h.state.noteOrder = removeID(h.state.noteOrder, id)
	c.Status(http.StatusNoContent)
}

func (h *handler) listAchievements(c *gin.Context) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	out := make([]api.Achievement, len(h.state.achievements))
	copy(out, h.state.achievements)
	c.JSON(http.StatusOK, out)
}

func (h *handler) getWeekly(c *gin.Context) {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	c.JSON(http.StatusOK, h.state.weekly(h.today()))
}

func (h *handler) claimWeeklyBonus(c *gin.Context) {
	var req api.WeeklyBonusClaim
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.WeekStart == "" {
		req.WeekStart = weekStart(h.today())
	}

	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	if h.state.bonusWeeks[req.WeekStart] {
		c.JSON(http.StatusConflict, gin.H{"error": "bonus already claimed for week " + req.WeekStart})
		return
	}
	h.state.bonusWeeks[req.WeekStart] = true
	h.state.award(h.today(), xpWeeklyBonus)
	h.log.Info("weekly bonus claimed", "week_start", req.WeekStart)
	c.JSON(http.StatusOK, h.state.weekly(h.today()))
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
