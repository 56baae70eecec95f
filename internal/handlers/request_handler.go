package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Hossain-Md-Shahriar/volunteer-management-server/dto"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/authctx"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/services"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/model"
)

// storageTimeout bounds the ledger's storage round trips: a call completes
// or fails, it never blocks indefinitely.
const storageTimeout = 5 * time.Second

// POST /requests: apply to volunteer on a post, consuming one slot.
func ApplyRequest(svc *services.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := authctx.EmailFrom(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		var body dto.ApplyRequestDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}
		postID, err := bson.ObjectIDFromHex(body.PostID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid postId")
		}

		ctx, cancel := context.WithTimeout(c.Context(), storageTimeout)
		defer cancel()

		created, err := svc.Apply(ctx, email, model.VolunteerRequest{
			PostID:     postID,
			PostTitle:  body.PostTitle,
			Volunteer:  body.Volunteer,
			Suggestion: body.Suggestion,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrDuplicateRequest):
				return fiber.NewError(fiber.StatusBadRequest, "You have already requested on this post.")
			case errors.Is(err, services.ErrPostNotFound):
				return fiber.NewError(fiber.StatusNotFound, "post not found")
			case errors.Is(err, services.ErrSlotsExhausted):
				return fiber.NewError(fiber.StatusConflict, "no volunteer slots remaining")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// DELETE /requests: cancel a request, returning its slot.
func CancelRequest(svc *services.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID, err := bson.ObjectIDFromHex(c.Query("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request id")
		}
		postID, err := bson.ObjectIDFromHex(c.Query("postId"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid postId")
		}

		ctx, cancel := context.WithTimeout(c.Context(), storageTimeout)
		defer cancel()

		if err := svc.Cancel(ctx, requestID, postID); err != nil {
			if errors.Is(err, services.ErrRequestNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "request not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"deletedCount": 1})
	}
}

// GET /requests/by-volunteer/:email, identity match enforced by middleware.
func ListRequestsByVolunteer(svc *services.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqs, err := svc.ListByVolunteer(c.Context(), c.Params("email"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(reqs)
	}
}
