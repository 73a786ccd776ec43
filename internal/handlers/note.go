package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/adi-1080/notesapp/internal/auth"
	dom "github.com/adi-1080/notesapp/internal/domain"
	"github.com/adi-1080/notesapp/internal/dto"
	"github.com/adi-1080/notesapp/internal/service"

	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	svc *service.NoteService
}

func NewNoteHandler(svc *service.NoteService) *NoteHandler {
	return &NoteHandler{svc: svc}
}

// Create godoc
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateNoteRequest  true  "Note body"
// @Success      201   {object}  dto.NoteResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := h.svc.Create(c.Request.Context(), user.ID, req.Title, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, noteToResponse(n))
}

// List godoc
// @Summary      List notes, newest first
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        offset  query     int  false  "Offset (default 0)"
// @Param        limit   query     int  false  "Page size (default 50, max 100)"
// @Success      200  {object}  dto.ListNotesResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var q dto.ListNotesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list, err := h.svc.List(c.Request.Context(), user.ID, q.Offset, q.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ListNotesResponse{Items: notesToResponses(list)})
}

// Search godoc
// @Summary      Search notes by query
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Search query (title/content)"
// @Success      200  {object}  dto.ListNotesResponse
// @Failure      401  {object}  map[string]string
// @Router       /notes/search [get]
func (h *NoteHandler) Search(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.svc.Search(c.Request.Context(), user.ID, c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ListNotesResponse{Items: notesToResponses(list)})
}

// GetByID godoc
// @Summary      Get a note by ID
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Note ID"
// @Success      200  {object}  dto.NoteResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notes/{id} [get]
func (h *NoteHandler) GetByID(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	n, err := h.svc.GetByID(c.Request.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, noteToResponse(n))
}

// Replace godoc
// @Summary      Replace a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int  true  "Note ID"
// @Param        body  body      dto.CreateNoteRequest  true  "Full note body"
// @Success      200   {object}  dto.NoteResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /notes/{id} [put]
func (h *NoteHandler) Replace(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := h.svc.Update(c.Request.Context(), user.ID, id, &req.Title, &req.Content)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, noteToResponse(n))
}

// Update godoc
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int  true  "Note ID"
// @Param        body  body      dto.UpdateNoteRequest  true  "Partial update"
// @Success      200   {object}  dto.NoteResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /notes/{id} [patch]
func (h *NoteHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := h.svc.Update(c.Request.Context(), user.ID, id, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, noteToResponse(n))
}

// Delete godoc
// @Summary      Delete a note
// @Tags         notes
// @Security     BearerAuth
// @Param        id   path  int  true  "Note ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /notes/{id} [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), user.ID, id); err != nil {
		if errors.Is(err, service.ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// currentUser fetches the account resolved by the auth middleware.
// Responds 401 and returns ok=false if it is missing.
func currentUser(c *gin.Context) (dom.User, bool) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return dom.User{}, false
	}
	return user, true
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func noteToResponse(n dom.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func notesToResponses(list []dom.Note) []dto.NoteResponse {
	out := make([]dto.NoteResponse, len(list))
	for i := range list {
		out[i] = noteToResponse(list[i])
	}
	return out
}
