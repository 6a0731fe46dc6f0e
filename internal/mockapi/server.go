package mockapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "eventhub/internal/errors"
	"eventhub/internal/localstore"
	"eventhub/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the backend REST contract over a locally persisted store.
// It is a development fixture, not a production backend: just enough
// behavior for the client to run against.
type Server struct {
	router *gin.Engine
	store  *localstore.Store
}

// NewServer создает новый экземпляр сервера
func NewServer(store *localstore.Store) *Server {
	router := gin.Default()
	router.Use(cors())

	server := &Server{
		router: router,
		store:  store,
	}
	server.setupRoutes()
	return server
}

// setupRoutes настраивает все API роуты
func (s *Server) setupRoutes() {
	events := s.router.Group("/Event")
	{
		events.GET("/GetAllEvents", s.listEvents)
		events.GET("/GetEventById/:id", s.getEvent)
		events.GET("/GetEventsByCategory/:id", s.listEventsByCategory)
		events.POST("/AddEvent", s.requireAdmin, s.addEvent)
		events.PUT("/UpdateEvent/:id", s.requireAdmin, s.updateEvent)
		events.DELETE("/DeleteEvent/:id", s.requireAdmin, s.deleteEvent)
		events.DELETE("/SoftDeleteEvent/:id", s.requireAdmin, s.softDeleteEvent)
	}

	categories := s.router.Group("/Category")
	{
		categories.GET("/GetAllCategories", s.listCategories)
		categories.GET("/GetCategoryById/:id", s.getCategory)
		categories.POST("/AddCategory", s.requireAdmin, s.addCategory)
		categories.PUT("/UpdateCategory/:id", s.requireAdmin, s.updateCategory)
		categories.DELETE("/DeleteCategory/:id", s.requireAdmin, s.deleteCategory)
		categories.DELETE("/SoftDeleteCategory/:id", s.requireAdmin, s.softDeleteCategory)
	}

	bookings := s.router.Group("/Booking")
	{
		bookings.GET("/GetAllBookings", s.requireAdmin, s.listBookings)
		bookings.GET("/GetUserBookings", s.userBookings)
		bookings.POST("/AddBooking", s.addBooking)
		bookings.DELETE("/DeleteBooking/:id", s.deleteBooking)
		bookings.DELETE("/SoftDeleteBooking/:id", s.softDeleteBooking)
	}

	auth := s.router.Group("/api/auth")
	{
		auth.POST("/login", s.login)
		auth.POST("/register", s.register)
		auth.GET("/get-user", s.getUser)
		auth.POST("/logout", s.logout)
	}

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// healthCheck обрабатывает health check запросы
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "eventhub-mock",
	})
}

// Handler returns the HTTP handler, used by tests and the binary alike.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run запускает HTTP сервер
func (s *Server) Run(port string) error {
	return s.router.Run(fmt.Sprintf(":%s", port))
}

// cors отдает заголовки для браузерных клиентов
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// requireAdmin пропускает только администраторов
func (s *Server) requireAdmin(c *gin.Context) {
	user, err := s.store.CurrentUserByToken(c.Request.Context(), bearerToken(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	if !user.HasRole("Admin") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin role required"})
		return
	}
	c.Next()
}

// writeError переводит ошибку таксономии в HTTP статус
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrAlreadyBooked):
		// The production backend reports a duplicate booking as 400.
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrAuthentication), errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"message": err.Error()})
}

func pageFromQuery(c *gin.Context) models.Page {
	page := models.Page{}
	fmt.Sscan(c.DefaultQuery("pageNumber", "1"), &page.Number)
	fmt.Sscan(c.DefaultQuery("pageSize", "10"), &page.Size)
	return page.Normalize()
}

func parseEventDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid EventDate %q: %w", raw, apperrors.ErrValidation)
}
