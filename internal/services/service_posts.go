package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Hossain-Md-Shahriar/volunteer-management-server/dto"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/repository"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/model"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrInvalidPost  = errors.New("invalid post payload")
)

// PostService is plain pass-through CRUD over PostRepository; the capacity
// invariant lives in RequestService and PostRepository.AdjustSlots.
type PostService struct {
	posts repository.PostRepository
	log   zerolog.Logger
}

func NewPostService(posts repository.PostRepository, log zerolog.Logger) *PostService {
	return &PostService{posts: posts, log: log}
}

func (s *PostService) Create(ctx context.Context, body dto.CreatePostDTO) (model.Post, error) {
	if body.Title == "" || body.Organizer.Email == "" {
		return model.Post{}, ErrInvalidPost
	}
	if body.SlotsRemaining < 0 {
		return model.Post{}, ErrInvalidPost
	}
	return s.posts.Create(ctx, model.Post{
		Title:          body.Title,
		Description:    body.Description,
		Category:       body.Category,
		Location:       body.Location,
		Thumbnail:      body.Thumbnail,
		Deadline:       body.Deadline,
		SlotsRemaining: body.SlotsRemaining,
		Organizer:      body.Organizer,
	})
}

func (s *PostService) Get(ctx context.Context, id bson.ObjectID) (model.Post, error) {
	p, err := s.posts.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Post{}, ErrPostNotFound
	}
	return p, err
}

func (s *PostService) List(ctx context.Context, search string) ([]model.Post, error) {
	return s.posts.List(ctx, search)
}

func (s *PostService) ListByOrganizer(ctx context.Context, email string) ([]model.Post, error) {
	return s.posts.ListByOrganizer(ctx, email)
}

func (s *PostService) Update(ctx context.Context, id bson.ObjectID, fields map[string]any) error {
	return s.posts.Update(ctx, id, fields)
}

func (s *PostService) Delete(ctx context.Context, id bson.ObjectID) error {
	err := s.posts.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPostNotFound
	}
	return err
}
