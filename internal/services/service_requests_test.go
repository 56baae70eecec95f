package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/repository"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/model"
)

func newTestLedger() (*RequestService, *repository.MemoryPostRepo, *repository.MemoryRequestRepo) {
	posts := repository.NewMemoryPostRepo()
	requests := repository.NewMemoryRequestRepo()
	svc := NewRequestService(posts, requests, zerolog.Nop())
	svc.restoreBackoff = time.Millisecond
	return svc, posts, requests
}

func seedPost(t *testing.T, posts *repository.MemoryPostRepo, slots int) model.Post {
	t.Helper()
	p, err := posts.Create(context.Background(), model.Post{Title: "Tree Planting", SlotsRemaining: slots})
	require.NoError(t, err)
	return p
}

func slotsOf(t *testing.T, posts *repository.MemoryPostRepo, id bson.ObjectID) int {
	t.Helper()
	p, err := posts.Get(context.Background(), id)
	require.NoError(t, err)
	return p.SlotsRemaining
}

func apply(svc *RequestService, email string, postID bson.ObjectID) (model.VolunteerRequest, error) {
	return svc.Apply(context.Background(), email, model.VolunteerRequest{
		PostID:    postID,
		Volunteer: model.Volunteer{Name: "Vol " + email, Email: email},
	})
}

// Walks the full lifecycle on a two-slot post: apply, duplicate apply,
// exhaustion, cancel, re-apply.
func TestApplyCancelLifecycle(t *testing.T) {
	svc, posts, _ := newTestLedger()
	p := seedPost(t, posts, 2)

	reqA, err := apply(svc, "a@example.com", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, slotsOf(t, posts, p.ID))
	assert.Equal(t, model.StatusRequested, reqA.Status)
	assert.Equal(t, "a@example.com", reqA.Volunteer.Email)

	_, err = apply(svc, "a@example.com", p.ID)
	assert.ErrorIs(t, err, ErrDuplicateRequest)
	assert.Equal(t, 1, slotsOf(t, posts, p.ID), "rejected duplicate must not touch slots")

	_, err = apply(svc, "b@example.com", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, slotsOf(t, posts, p.ID))

	_, err = apply(svc, "c@example.com", p.ID)
	assert.ErrorIs(t, err, ErrSlotsExhausted)
	assert.Equal(t, 0, slotsOf(t, posts, p.ID), "exhausted apply must leave zero untouched")

	require.NoError(t, svc.Cancel(context.Background(), reqA.ID, p.ID))
	assert.Equal(t, 1, slotsOf(t, posts, p.ID))

	listed, err := svc.ListByVolunteer(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, listed, "cancelled request must be gone")

	_, err = apply(svc, "c@example.com", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, slotsOf(t, posts, p.ID))
}

func TestApplyPostNotFound(t *testing.T) {
	svc, _, _ := newTestLedger()
	_, err := apply(svc, "a@example.com", bson.NewObjectID())
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCancelRejectsMismatchedPost(t *testing.T) {
	svc, posts, requests := newTestLedger()
	p := seedPost(t, posts, 3)
	other := seedPost(t, posts, 3)

	req, err := apply(svc, "a@example.com", p.ID)
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), req.ID, other.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)
	assert.Equal(t, 2, slotsOf(t, posts, p.ID), "mismatch must not mutate capacity")
	assert.Equal(t, 3, slotsOf(t, posts, other.ID))

	_, err = requests.FindByID(context.Background(), req.ID)
	assert.NoError(t, err, "request record must survive a rejected cancel")
}

func TestCancelUnknownRequest(t *testing.T) {
	svc, posts, _ := newTestLedger()
	p := seedPost(t, posts, 1)

	err := svc.Cancel(context.Background(), bson.NewObjectID(), p.ID)
	assert.ErrorIs(t, err, ErrRequestNotFound)
	assert.Equal(t, 1, slotsOf(t, posts, p.ID))
}

// Cancel keeps incrementing even past the capacity the post started with;
// there is deliberately no upper clamp.
func TestCancelIncrementIsUnbounded(t *testing.T) {
	svc, posts, requests := newTestLedger()
	p := seedPost(t, posts, 1)

	req, err := apply(svc, "a@example.com", p.ID)
	require.NoError(t, err)

	// organizer edit bumps capacity while the request is live
	require.NoError(t, posts.Update(context.Background(), p.ID, map[string]any{"slotsRemaining": 5}))

	require.NoError(t, svc.Cancel(context.Background(), req.ID, p.ID))
	assert.Equal(t, 6, slotsOf(t, posts, p.ID))

	_, err = requests.FindByID(context.Background(), req.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

type insertFailingRepo struct {
	repository.RequestRepository
	insertErr error
}

func (r *insertFailingRepo) Insert(ctx context.Context, req model.VolunteerRequest) (model.VolunteerRequest, error) {
	return model.VolunteerRequest{}, r.insertErr
}

// A failed insert after a successful decrement must restore the slot before
// the error surfaces.
func TestApplyCompensatesFailedInsert(t *testing.T) {
	posts := repository.NewMemoryPostRepo()
	broken := &insertFailingRepo{
		RequestRepository: repository.NewMemoryRequestRepo(),
		insertErr:         errors.New("storage blew up"),
	}
	svc := NewRequestService(posts, broken, zerolog.Nop())
	svc.restoreBackoff = time.Millisecond

	p := seedPost(t, posts, 2)

	_, err := apply(svc, "a@example.com", p.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateRequest)
	assert.Equal(t, 2, slotsOf(t, posts, p.ID), "decrement must be compensated")
}

// A unique-index rejection means a concurrent duplicate won between the
// pre-check and the insert; the caller sees DuplicateRequest and the slot
// goes back.
func TestApplyCompensatesLostInsertRace(t *testing.T) {
	posts := repository.NewMemoryPostRepo()
	broken := &insertFailingRepo{
		RequestRepository: repository.NewMemoryRequestRepo(),
		insertErr:         repository.ErrDuplicate,
	}
	svc := NewRequestService(posts, broken, zerolog.Nop())
	svc.restoreBackoff = time.Millisecond

	p := seedPost(t, posts, 2)

	_, err := apply(svc, "a@example.com", p.ID)
	assert.ErrorIs(t, err, ErrDuplicateRequest)
	assert.Equal(t, 2, slotsOf(t, posts, p.ID))
}

type timeoutAfterCommitRepo struct {
	repository.PostRepository
	armed bool
}

// AdjustSlots applies the decrement but reports a timeout, the way a lost
// response to a committed server-side write looks to the caller.
func (r *timeoutAfterCommitRepo) AdjustSlots(ctx context.Context, id bson.ObjectID, delta int) (int, error) {
	n, err := r.PostRepository.AdjustSlots(ctx, id, delta)
	if delta < 0 && r.armed {
		r.armed = false
		return 0, context.DeadlineExceeded
	}
	return n, err
}

// A decrement whose outcome is unknown must be compensated before the error
// surfaces, otherwise a committed decrement leaks a slot with no request
// record behind it.
func TestApplyCompensatesAmbiguousDecrement(t *testing.T) {
	inner := repository.NewMemoryPostRepo()
	posts := &timeoutAfterCommitRepo{PostRepository: inner, armed: true}
	svc := NewRequestService(posts, repository.NewMemoryRequestRepo(), zerolog.Nop())
	svc.restoreBackoff = time.Millisecond

	p := seedPost(t, inner, 2)

	_, err := apply(svc, "a@example.com", p.ID)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 2, slotsOf(t, inner, p.ID), "committed decrement must be restored")

	listed, err := svc.ListByVolunteer(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, listed, "no request record may survive a failed apply")
}

func TestConcurrentApplySamePair(t *testing.T) {
	svc, posts, _ := newTestLedger()
	p := seedPost(t, posts, 5)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, duplicates := 0, 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := apply(svc, "a@example.com", p.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrDuplicateRequest):
				duplicates++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded, "exactly one apply may win")
	assert.Equal(t, 9, duplicates)
	assert.Equal(t, 4, slotsOf(t, posts, p.ID), "exactly one slot consumed")

	listed, err := svc.ListByVolunteer(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestConcurrentApplyBurstHoldsInvariant(t *testing.T) {
	svc, posts, _ := newTestLedger()
	p := seedPost(t, posts, 5)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, exhausted := 0, 0
	for i := 0; i < 20; i++ {
		email := string(rune('a'+i)) + "@example.com"
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := apply(svc, email, p.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotsExhausted):
				exhausted++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 15, exhausted)
	assert.Equal(t, 0, slotsOf(t, posts, p.ID))
}
