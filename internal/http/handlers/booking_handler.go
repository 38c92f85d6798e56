package handlers

import (
	"github.com/gofiber/fiber/v2"

	"resortshare/internal/domain"
	applog "resortshare/internal/log"
	"resortshare/internal/repos"
	"resortshare/internal/validate"
)

type BookingHandler struct {
	Bookings *repos.BookingRepo
}

type createBookingRequest struct {
	ResortID   string `json:"resortId"`
	CheckIn    string `json:"checkIn"`
	CheckOut   string `json:"checkOut"`
	Guests     int    `json:"guests"`
	TotalPrice int    `json:"totalPrice"`
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req createBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid booking data"})
	}
	if _, ok := validate.ID(req.ResortID); !ok || req.CheckIn == "" || req.CheckOut == "" || req.Guests < 1 || req.TotalPrice < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid booking data"})
	}
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authenticated"})
	}

	booking, err := h.Bookings.Create(domain.Booking{
		ResortID:   req.ResortID,
		UserID:     u.ID,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Guests:     req.Guests,
		TotalPrice: req.TotalPrice,
	})
	if err != nil {
		applog.Error(c, "bookings.create", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create booking"})
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (h *BookingHandler) ByUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}
	u, _ := c.Locals("user").(*domain.User)
	if u == nil || (u.ID != id && u.Role != "ADMIN") {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied"})
	}
	bookings, err := h.Bookings.ByUser(id)
	if err != nil {
		applog.Error(c, "bookings.list", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch bookings"})
	}
	return c.JSON(bookings)
}
