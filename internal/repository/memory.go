package repository

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Hossain-Md-Shahriar/volunteer-management-server/model"
)

// In-memory implementations backing tests and local runs without a Mongo
// deployment. The mutex serializes every operation, which gives the same
// guarantees the real store provides through conditional updates and the
// unique index.

type MemoryPostRepo struct {
	mu    sync.Mutex
	posts map[bson.ObjectID]model.Post
}

func NewMemoryPostRepo() *MemoryPostRepo {
	return &MemoryPostRepo{posts: make(map[bson.ObjectID]model.Post)}
}

func (r *MemoryPostRepo) Create(_ context.Context, p model.Post) (model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = bson.NewObjectID()
	r.posts[p.ID] = p
	return p, nil
}

func (r *MemoryPostRepo) Get(_ context.Context, id bson.ObjectID) (model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return model.Post{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryPostRepo) List(_ context.Context, search string) ([]model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Post{}
	for _, p := range r.posts {
		if search == "" || strings.Contains(strings.ToLower(p.Title), strings.ToLower(search)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryPostRepo) ListByOrganizer(_ context.Context, email string) ([]model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Post{}
	for _, p := range r.posts {
		if p.Organizer.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

// Update merges fields verbatim, like the $set path of the Mongo store.
// The merge round-trips through JSON so any key the model maps is applied;
// keys outside the model vanish on the read-back, exactly as a Mongo
// document read decoded into model.Post would drop them.
func (r *MemoryPostRepo) Update(_ context.Context, id bson.ObjectID, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.posts[id]
	p.ID = id

	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	for k, v := range fields {
		if k == "_id" {
			continue
		}
		doc[k] = v
	}
	merged, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var next model.Post
	if err := json.Unmarshal(merged, &next); err != nil {
		return err
	}
	next.ID = id
	r.posts[id] = next
	return nil
}

func (r *MemoryPostRepo) Delete(_ context.Context, id bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *MemoryPostRepo) AdjustSlots(_ context.Context, id bson.ObjectID, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return 0, ErrNotFound
	}
	if p.SlotsRemaining+delta < 0 {
		return 0, ErrNoSlots
	}
	p.SlotsRemaining += delta
	r.posts[id] = p
	return p.SlotsRemaining, nil
}

type MemoryRequestRepo struct {
	mu       sync.Mutex
	requests map[bson.ObjectID]model.VolunteerRequest
}

func NewMemoryRequestRepo() *MemoryRequestRepo {
	return &MemoryRequestRepo{requests: make(map[bson.ObjectID]model.VolunteerRequest)}
}

func (r *MemoryRequestRepo) Insert(_ context.Context, req model.VolunteerRequest) (model.VolunteerRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.requests {
		if existing.PostID == req.PostID && existing.Volunteer.Email == req.Volunteer.Email {
			return model.VolunteerRequest{}, ErrDuplicate
		}
	}
	req.ID = bson.NewObjectID()
	r.requests[req.ID] = req
	return req, nil
}

func (r *MemoryRequestRepo) FindByID(_ context.Context, id bson.ObjectID) (model.VolunteerRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return model.VolunteerRequest{}, ErrNotFound
	}
	return req, nil
}

func (r *MemoryRequestRepo) FindByPostAndEmail(_ context.Context, postID bson.ObjectID, email string) (model.VolunteerRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.PostID == postID && req.Volunteer.Email == email {
			return req, nil
		}
	}
	return model.VolunteerRequest{}, ErrNotFound
}

func (r *MemoryRequestRepo) ListByVolunteer(_ context.Context, email string) ([]model.VolunteerRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.VolunteerRequest{}
	for _, req := range r.requests {
		if req.Volunteer.Email == email {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *MemoryRequestRepo) Delete(_ context.Context, id bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[id]; !ok {
		return ErrNotFound
	}
	delete(r.requests, id)
	return nil
}
