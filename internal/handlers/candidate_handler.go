package handlers

import (
	"net/http"
	"strconv"

	"recruitdesk_backend/internal/auth"
	"recruitdesk_backend/internal/middleware"
	"recruitdesk_backend/internal/services"
	"recruitdesk_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	*BaseHandler
	candidateService services.CandidateService
	noteService      services.NoteService
}

func NewCandidateHandler(base *BaseHandler, candidateService services.CandidateService, noteService services.NoteService) *CandidateHandler {
	return &CandidateHandler{
		BaseHandler:      base,
		candidateService: candidateService,
		noteService:      noteService,
	}
}

func (h *CandidateHandler) RegisterRoutes(r *gin.RouterGroup, tm *auth.TokenManager) {
	candidates := r.Group("/candidates")
	candidates.Use(middleware.AuthMiddleware(tm))
	{
		candidates.POST("", h.CreateCandidate)
		candidates.GET("", h.ListCandidates)
		candidates.GET("/:candidateId", h.GetCandidate)
		candidates.POST("/:candidateId/notes", h.CreateNote)
		candidates.GET("/:candidateId/notes", h.ListNotes)
	}
}

func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCandidateRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	item, err := h.candidateService.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "item": item})
}

func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	criteria := dto.CandidateCriteria{
		Query:  c.Query("q"),
		Cursor: c.Query("cursor"),
		Limit:  limit,
	}

	resp, err := h.candidateService.List(criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": resp.Items, "next_cursor": resp.NextCursor})
}

func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	item, err := h.candidateService.Get(c.Param("candidateId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "item": item})
}

func (h *CandidateHandler) CreateNote(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateNoteRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	result, err := h.noteService.CreateNote(userID, c.Param("candidateId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":        true,
		"note_id":   result.Note.ID,
		"item":      result.Note,
		"delivered": result.Delivered,
	})
}

func (h *CandidateHandler) ListNotes(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	criteria := dto.NoteCriteria{
		Cursor: c.Query("cursor"),
		Limit:  limit,
	}

	resp, err := h.noteService.ListNotes(c.Param("candidateId"), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": resp.Items, "next_cursor": resp.NextCursor})
}
