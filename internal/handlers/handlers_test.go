package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/adi-1080/notesapp/internal/auth"
	dom "github.com/adi-1080/notesapp/internal/domain"
	"github.com/adi-1080/notesapp/internal/repo"
	"github.com/adi-1080/notesapp/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

// In-memory repos implementing the same contracts as the Postgres ones:
// unique email on users, owner filter on every note lookup.

type memUserRepo struct {
	users  map[string]dom.User
	nextID int64
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (dom.User, error) {
	u, ok := m.users[email]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *memUserRepo) Create(_ context.Context, email, passwordHash string, fullName *string) (dom.User, error) {
	if _, ok := m.users[email]; ok {
		return dom.User{}, repo.ErrDuplicateEmail
	}
	u := dom.User{ID: m.nextID, Email: email, FullName: fullName, PasswordHash: passwordHash, CreatedAt: time.Now()}
	m.nextID++
	m.users[email] = u
	return u, nil
}

type memNoteRepo struct {
	notes  map[int64]dom.Note
	nextID int64
	now    time.Time
}

func (m *memNoteRepo) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func (m *memNoteRepo) Create(_ context.Context, n dom.Note) (dom.Note, error) {
	now := m.tick()
	n.ID = m.nextID
	m.nextID++
	n.CreatedAt = now
	n.UpdatedAt = now
	m.notes[n.ID] = n
	return n, nil
}

func (m *memNoteRepo) GetByID(_ context.Context, ownerID, id int64) (dom.Note, error) {
	n, ok := m.notes[id]
	if !ok || n.OwnerID != ownerID {
		return dom.Note{}, pgx.ErrNoRows
	}
	return n, nil
}

func (m *memNoteRepo) List(_ context.Context, ownerID int64, offset, limit int) ([]dom.Note, error) {
	owned := m.owned(ownerID)
	if offset >= len(owned) {
		return nil, nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], nil
}

func (m *memNoteRepo) Update(_ context.Context, ownerID, id int64, patch dom.Note) (dom.Note, error) {
	n, ok := m.notes[id]
	if !ok || n.OwnerID != ownerID {
		return dom.Note{}, pgx.ErrNoRows
	}
	n.Title = patch.Title
	n.Content = patch.Content
	n.UpdatedAt = m.tick()
	m.notes[id] = n
	return n, nil
}

func (m *memNoteRepo) Delete(_ context.Context, ownerID, id int64) error {
	n, ok := m.notes[id]
	if !ok || n.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(m.notes, id)
	return nil
}

func (m *memNoteRepo) Search(_ context.Context, ownerID int64, q string) ([]dom.Note, error) {
	q = strings.ToLower(q)
	var out []dom.Note
	for _, n := range m.owned(ownerID) {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memNoteRepo) owned(ownerID int64) []dom.Note {
	var owned []dom.Note
	for _, n := range m.notes {
		if n.OwnerID == ownerID {
			owned = append(owned, n)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}
		return owned[i].ID > owned[j].ID
	})
	return owned
}

// newTestRouter wires the real codec, guard, services and handlers over
// the in-memory repos, mirroring the production route setup.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := &memUserRepo{users: map[string]dom.User{}, nextID: 1}
	noteRepo := &memNoteRepo{
		notes:  map[int64]dom.Note{},
		nextID: 1,
		now:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	codec := auth.NewCodec("handler-test-secret", time.Hour)
	authSvc := service.NewAuthService(userRepo, codec)
	noteSvc := service.NewNoteService(noteRepo, nil)
	guard := auth.NewGuard(codec, userRepo)

	r := gin.New()
	api := r.Group("/api/v1")

	authHandler := NewAuthHandler(authSvc)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("", auth.RequireAuth(guard))

	userHandler := NewUserHandler()
	protected.GET("/users/me", userHandler.Me)

	noteHandler := NewNoteHandler(noteSvc)
	protected.POST("/notes", noteHandler.Create)
	protected.GET("/notes", noteHandler.List)
	protected.GET("/notes/search", noteHandler.Search)
	protected.GET("/notes/:id", noteHandler.GetByID)
	protected.PUT("/notes/:id", noteHandler.Replace)
	protected.PATCH("/notes/:id", noteHandler.Update)
	protected.DELETE("/notes/:id", noteHandler.Delete)

	return r
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func decodeNote(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}
