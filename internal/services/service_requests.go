package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/metrics"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/repository"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/model"
)

var (
	ErrRequestNotFound  = errors.New("request not found")
	ErrDuplicateRequest = errors.New("already requested on this post")
	ErrSlotsExhausted   = errors.New("no volunteer slots remaining")
)

// RequestService drives the request lifecycle and keeps the post capacity
// invariant: slotsRemaining always equals initial capacity minus live
// requests. The slot decrement and the request insert are two storage calls,
// so any failure between them is compensated by restoring the slot.
type RequestService struct {
	posts    repository.PostRepository
	requests repository.RequestRepository
	log      zerolog.Logger

	restoreAttempts int
	restoreBackoff  time.Duration
}

func NewRequestService(posts repository.PostRepository, requests repository.RequestRepository, log zerolog.Logger) *RequestService {
	return &RequestService{
		posts:           posts,
		requests:        requests,
		log:             log,
		restoreAttempts: 5,
		restoreBackoff:  50 * time.Millisecond,
	}
}

// Apply files a volunteer request against a post and takes one slot.
// The volunteer identity comes from the authenticated caller, never from the
// payload, so the uniqueness pair cannot be spoofed.
func (s *RequestService) Apply(ctx context.Context, volunteerEmail string, req model.VolunteerRequest) (model.VolunteerRequest, error) {
	req.Volunteer.Email = volunteerEmail
	req.Status = model.StatusRequested
	req.CreatedAt = time.Now().UTC()

	// Fast-path duplicate check. The unique index below is what actually
	// closes the race with a concurrent apply for the same pair.
	if _, err := s.requests.FindByPostAndEmail(ctx, req.PostID, volunteerEmail); err == nil {
		return model.VolunteerRequest{}, ErrDuplicateRequest
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.VolunteerRequest{}, err
	}

	if _, err := s.posts.AdjustSlots(ctx, req.PostID, -1); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return model.VolunteerRequest{}, ErrPostNotFound
		case errors.Is(err, repository.ErrNoSlots):
			metrics.SlotAdjustments.WithLabelValues("exhausted").Inc()
			return model.VolunteerRequest{}, ErrSlotsExhausted
		default:
			// A transport failure (timeout, dropped connection) leaves the
			// decrement outcome unknown: it may have committed server-side.
			// Restore before surfacing so a committed decrement cannot leak
			// the slot; if the restore cannot get through either it ends in
			// the reconciliation-task log.
			s.restoreSlot(ctx, req.PostID)
			return model.VolunteerRequest{}, err
		}
	}
	metrics.SlotAdjustments.WithLabelValues("taken").Inc()

	created, err := s.requests.Insert(ctx, req)
	if err != nil {
		// The slot is already taken; give it back before reporting.
		s.restoreSlot(ctx, req.PostID)
		if errors.Is(err, repository.ErrDuplicate) {
			return model.VolunteerRequest{}, ErrDuplicateRequest
		}
		return model.VolunteerRequest{}, err
	}
	return created, nil
}

// Cancel removes a request and returns its slot to the post. The request must
// reference the supplied post id; a mismatch mutates nothing.
func (s *RequestService) Cancel(ctx context.Context, requestID, postID bson.ObjectID) error {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRequestNotFound
		}
		return err
	}
	if req.PostID != postID {
		return ErrRequestNotFound
	}

	if err := s.requests.Delete(ctx, requestID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// lost to a concurrent cancel
			return ErrRequestNotFound
		}
		return err
	}

	s.restoreSlot(ctx, postID)
	return nil
}

func (s *RequestService) ListByVolunteer(ctx context.Context, email string) ([]model.VolunteerRequest, error) {
	return s.requests.ListByVolunteer(ctx, email)
}

// restoreSlot increments a post's capacity back by one, retrying with
// doubling backoff. The increment is intentionally unbounded. A missing post
// is fine (it was deleted); any other persistent failure is handed off as a
// reconciliation task instead of being dropped, because at that point a
// request record and the counter disagree. Runs detached from the caller's
// cancellation so a timed-out apply still repairs the counter.
func (s *RequestService) restoreSlot(ctx context.Context, postID bson.ObjectID) {
	ctx = context.WithoutCancel(ctx)
	backoff := s.restoreBackoff

	for attempt := 1; attempt <= s.restoreAttempts; attempt++ {
		_, err := s.posts.AdjustSlots(ctx, postID, +1)
		if err == nil {
			metrics.SlotAdjustments.WithLabelValues("restored").Inc()
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn().Str("postId", postID.Hex()).Msg("post gone, slot not restored")
			return
		}
		s.log.Warn().Err(err).Int("attempt", attempt).Str("postId", postID.Hex()).
			Msg("slot restore failed, retrying")
		time.Sleep(backoff)
		backoff *= 2
	}

	taskID := uuid.NewString()
	metrics.CompensationFailures.Inc()
	s.log.Error().Str("reconciliationTask", taskID).Str("postId", postID.Hex()).
		Msg("slot restore exhausted retries, manual reconciliation required")
}
