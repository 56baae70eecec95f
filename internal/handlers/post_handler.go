package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Hossain-Md-Shahriar/volunteer-management-server/dto"
	"github.com/Hossain-Md-Shahriar/volunteer-management-server/internal/services"
)

// GET /posts?search=
func ListPosts(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), storageTimeout)
		defer cancel()

		posts, err := svc.List(ctx, c.Query("search"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(posts)
	}
}

// GET /posts/:id
func GetPost(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := bson.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid post id")
		}
		ctx, cancel := context.WithTimeout(c.Context(), storageTimeout)
		defer cancel()

		post, err := svc.Get(ctx, id)
		if err != nil {
			if errors.Is(err, services.ErrPostNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "post not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(post)
	}
}

// POST /posts
func CreatePost(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body dto.CreatePostDTO
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}
		ctx, cancel := context.WithTimeout(c.Context(), storageTimeout)
		defer cancel()

		post, err := svc.Create(ctx, body)
		if err != nil {
			if errors.Is(err, services.ErrInvalidPost) {
				return fiber.NewError(fiber.StatusBadRequest, "postTitle, organizer.email and a non-negative slotsRemaining are required")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(post)
	}
}

// PUT /posts/:id: upsert-style field merge, fields pass through verbatim.
func UpdatePost(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := bson.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid post id")
		}
		fields := map[string]any{}
		if err := c.BodyParser(&fields); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}
		ctx, cancel := context.WithTimeout(c.Context(), storageTimeout)
		defer cancel()

		if err := svc.Update(ctx, id, fields); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(dto.AckResponse{Success: true})
	}
}

// DELETE /posts/:id
func DeletePost(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := bson.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid post id")
		}
		ctx, cancel := context.WithTimeout(c.Context(), storageTimeout)
		defer cancel()

		if err := svc.Delete(ctx, id); err != nil {
			if errors.Is(err, services.ErrPostNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "post not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"deletedCount": 1})
	}
}

// GET /posts/by-organizer/:email, identity match enforced by middleware.
func ListPostsByOrganizer(svc *services.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), storageTimeout)
		defer cancel()

		posts, err := svc.ListByOrganizer(ctx, c.Params("email"))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(posts)
	}
}
