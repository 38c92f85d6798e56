package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resortshare/internal/domain"
	applog "resortshare/internal/log"
	"resortshare/internal/repos"
	"resortshare/internal/validate"
)

type InquiryHandler struct {
	Inquiries *repos.InquiryRepo
}

type createInquiryRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	ResortID string `json:"resortId"`
	Message  string `json:"message"`
}

func (h *InquiryHandler) Create(c *fiber.Ctx) error {
	var req createInquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid inquiry data"})
	}
	email, ok := validate.Email(req.Email)
	if !ok || req.Name == "" || req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid inquiry data"})
	}

	inquiry, err := h.Inquiries.Create(domain.PropertyInquiry{
		Name:     req.Name,
		Email:    email,
		Phone:    req.Phone,
		ResortID: req.ResortID,
		Message:  req.Message,
	})
	if err != nil {
		applog.Error(c, "inquiries.create", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create property inquiry"})
	}
	return c.Status(fiber.StatusCreated).JSON(inquiry)
}

func (h *InquiryHandler) List(c *fiber.Ctx) error {
	inquiries, err := h.Inquiries.List()
	if err != nil {
		applog.Error(c, "inquiries.list", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch property inquiries"})
	}
	return c.JSON(inquiries)
}

type updateInquiryRequest struct {
	Status string `json:"status"`
}

func (h *InquiryHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid inquiry id"})
	}
	var req updateInquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid inquiry data"})
	}
	switch req.Status {
	case "new", "contacted", "closed":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid inquiry status"})
	}

	inquiry, err := h.Inquiries.UpdateStatus(id, req.Status)
	if err != nil {
		if isNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Property inquiry not found"})
		}
		applog.Error(c, "inquiries.update", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update property inquiry"})
	}
	applog.Audit(c, "inquiries.update", map[string]any{"inquiry": id, "status": req.Status})
	return c.JSON(inquiry)
}
