package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/adi-1080/notesapp/internal/cache"
	dom "github.com/adi-1080/notesapp/internal/domain"
	"github.com/adi-1080/notesapp/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

// ErrNoteNotFound is returned for a missing note and, identically, for
// a note owned by another account. Ownership misses must not be
// distinguishable from true absence.
var ErrNoteNotFound = errors.New("note not found")

const (
	// DefaultPageLimit applies when the caller sends no limit.
	DefaultPageLimit = 50
	// MaxPageLimit caps any requested page size.
	MaxPageLimit = 100
)

// NoteService is the ownership-scoped note store: every operation takes
// the owner and the repo applies it in the query predicate itself.
type NoteService struct {
	repo  repo.NoteRepo
	cache *cache.NoteCache
	sf    singleflight.Group
}

// NewNoteService creates a NoteService. If c is nil, caching is disabled.
func NewNoteService(r repo.NoteRepo, c *cache.NoteCache) *NoteService {
	return &NoteService{repo: r, cache: c}
}

func (s *NoteService) Create(ctx context.Context, ownerID int64, title, content string) (dom.Note, error) {
	n, err := s.repo.Create(ctx, dom.Note{
		OwnerID: ownerID,
		Title:   strings.TrimSpace(title),
		Content: content,
	})
	if err != nil {
		return dom.Note{}, err
	}
	s.invalidateCache(ctx, ownerID)
	return n, nil
}

func (s *NoteService) GetByID(ctx context.Context, ownerID, id int64) (dom.Note, error) {
	n, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Note{}, ErrNoteNotFound
		}
		return dom.Note{}, err
	}
	return n, nil
}

// List returns one page, newest-created first. limit is clamped to
// MaxPageLimit; an out-of-range offset yields an empty page.
func (s *NoteService) List(ctx context.Context, ownerID int64, offset, limit int) ([]dom.Note, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if s.cache != nil {
		key := "list:" + strconv.FormatInt(ownerID, 10) + ":" + strconv.Itoa(offset) + ":" + strconv.Itoa(limit)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx, ownerID, offset, limit); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx, ownerID, offset, limit)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, ownerID, offset, limit, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Note), nil
	}
	return s.repo.List(ctx, ownerID, offset, limit)
}

// Update applies a partial update: nil fields keep their stored value.
// The write itself is still a single owner-scoped statement.
func (s *NoteService) Update(ctx context.Context, ownerID, id int64, title, content *string) (dom.Note, error) {
	existing, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Note{}, ErrNoteNotFound
		}
		return dom.Note{}, err
	}
	patch := existing
	if title != nil {
		patch.Title = strings.TrimSpace(*title)
	}
	if content != nil {
		patch.Content = *content
	}
	n, err := s.repo.Update(ctx, ownerID, id, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Note{}, ErrNoteNotFound
		}
		return dom.Note{}, err
	}
	s.invalidateCache(ctx, ownerID)
	return n, nil
}

func (s *NoteService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNoteNotFound
		}
		return err
	}
	s.invalidateCache(ctx, ownerID)
	return nil
}

func (s *NoteService) Search(ctx context.Context, ownerID int64, q string) ([]dom.Note, error) {
	q = strings.TrimSpace(q)
	if s.cache != nil {
		key := "search:" + strconv.FormatInt(ownerID, 10) + ":" + strings.ToLower(q)
		v, err, _ := s.sf.Do(key, func() (interface{}, error) {
			if list, err := s.cache.GetSearch(ctx, ownerID, q); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.Search(ctx, ownerID, q)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetSearch(ctx, ownerID, q, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.Note), nil
	}
	return s.repo.Search(ctx, ownerID, q)
}

func (s *NoteService) invalidateCache(ctx context.Context, ownerID int64) {
	if s.cache != nil {
		_ = s.cache.InvalidateOwner(ctx, ownerID)
	}
}
