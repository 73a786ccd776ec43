package dto

import "time"

// CreateNoteRequest is the JSON body for POST /notes and PUT /notes/:id.
type CreateNoteRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=255"`
	Content string `json:"content" binding:"required"`
}

// UpdateNoteRequest is the JSON body for PATCH /notes/:id.
// nil = leave the field unchanged.
type UpdateNoteRequest struct {
	Title   *string `json:"title" binding:"omitempty,min=1,max=255"`
	Content *string `json:"content"`
}

// ListNotesQuery binds offset/limit query parameters.
type ListNotesQuery struct {
	Offset int `form:"offset,default=0" binding:"min=0"`
	Limit  int `form:"limit,default=50" binding:"min=1,max=100"`
}

type NoteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListNotesResponse struct {
	Items []NoteResponse `json:"items"`
}
