package mockapi

import (
	"io"
	"net/http"
	"strconv"

	"eventhub/internal/models"

	"github.com/gin-gonic/gin"
)

// Auth handlers

func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	resp, err := s.store.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	resp, err := s.store.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getUser(c *gin.Context) {
	user, err := s.store.CurrentUserByToken(c.Request.Context(), bearerToken(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) logout(c *gin.Context) {
	var req models.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := s.store.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Event handlers

func (s *Server) listEvents(c *gin.Context) {
	events, err := s.store.ListEvents(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (s *Server) getEvent(c *gin.Context) {
	event, err := s.store.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) listEventsByCategory(c *gin.Context) {
	events, err := s.store.ListEventsByCategory(c.Request.Context(), c.Param("id"), pageFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// eventDraftFromForm parses the multipart event form shared by add and update.
func eventDraftFromForm(c *gin.Context) (models.EventDraft, error) {
	draft := models.EventDraft{
		Title:       c.PostForm("Title"),
		Description: c.PostForm("Description"),
		CategoryID:  c.PostForm("CategoryId"),
		Venue:       c.PostForm("Venue"),
	}

	date, err := parseEventDate(c.PostForm("EventDate"))
	if err != nil {
		return draft, err
	}
	draft.EventDate = date

	if raw := c.PostForm("Price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return draft, err
		}
		draft.Price = price
	}

	if file, err := c.FormFile("Image"); err == nil {
		f, err := file.Open()
		if err != nil {
			return draft, err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return draft, err
		}
		draft.Image = &models.ImageUpload{Filename: file.Filename, Data: data}
	}

	return draft, nil
}

func (s *Server) addEvent(c *gin.Context) {
	draft, err := eventDraftFromForm(c)
	if err != nil {
		writeError(c, err)
		return
	}

	event, err := s.store.AddEvent(c.Request.Context(), draft)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (s *Server) updateEvent(c *gin.Context) {
	draft, err := eventDraftFromForm(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := s.store.UpdateEvent(c.Request.Context(), c.Param("id"), draft); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) deleteEvent(c *gin.Context) {
	if err := s.store.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) softDeleteEvent(c *gin.Context) {
	if err := s.store.SoftDeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Category handlers

func (s *Server) listCategories(c *gin.Context) {
	categories, err := s.store.ListCategories(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) getCategory(c *gin.Context) {
	category, err := s.store.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) addCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	category, err := s.store.AddCategory(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) updateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if err := s.store.UpdateCategory(c.Request.Context(), c.Param("id"), req.Name); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) deleteCategory(c *gin.Context) {
	if err := s.store.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) softDeleteCategory(c *gin.Context) {
	if err := s.store.SoftDeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Booking handlers

func (s *Server) listBookings(c *gin.Context) {
	bookings, err := s.store.ListBookings(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (s *Server) userBookings(c *gin.Context) {
	bookings, err := s.store.UserBookingsByToken(c.Request.Context(), bearerToken(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (s *Server) addBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	booking, err := s.store.AddBookingByToken(c.Request.Context(), bearerToken(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (s *Server) deleteBooking(c *gin.Context) {
	if err := s.store.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) softDeleteBooking(c *gin.Context) {
	if err := s.store.SoftDeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
