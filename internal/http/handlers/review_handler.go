package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resortshare/internal/domain"
	applog "resortshare/internal/log"
	"resortshare/internal/services"
	"resortshare/internal/validate"
)

type ReviewHandler struct {
	Catalog *services.CatalogService
}

func (h *ReviewHandler) ByResort(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid resort id"})
	}
	reviews, err := h.Catalog.ReviewsByResort(id)
	if err != nil {
		applog.Error(c, "reviews.list", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch reviews"})
	}
	return c.JSON(reviews)
}

type createReviewRequest struct {
	ResortID string `json:"resortId"`
	Rating   int    `json:"rating"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid review data"})
	}
	if _, ok := validate.ID(req.ResortID); !ok || req.Rating < 1 || req.Rating > 5 || req.Title == "" || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid review data"})
	}
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authenticated"})
	}

	review, err := h.Catalog.CreateReview(domain.Review{
		ResortID: req.ResortID,
		UserID:   u.ID,
		Rating:   req.Rating,
		Title:    req.Title,
		Content:  req.Content,
	})
	if err != nil {
		applog.Error(c, "reviews.create", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create review"})
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}
