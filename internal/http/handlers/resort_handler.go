package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "resortshare/internal/log"
	"resortshare/internal/repos"
	"resortshare/internal/services"
	"resortshare/internal/validate"
)

type ResortHandler struct {
	Catalog *services.CatalogService
	Resorts *repos.ResortRepo
}

func (h *ResortHandler) List(c *fiber.Ctx) error {
	resorts, err := h.Catalog.ListResorts()
	if err != nil {
		applog.Error(c, "resorts.list", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch resorts"})
	}
	return c.JSON(resorts)
}

func (h *ResortHandler) Top(c *fiber.Ctx) error {
	resorts, err := h.Catalog.TopResorts()
	if err != nil {
		applog.Error(c, "resorts.top", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch top resorts"})
	}
	return c.JSON(resorts)
}

func (h *ResortHandler) NewAvailability(c *fiber.Ctx) error {
	resorts, err := h.Catalog.NewAvailabilityResorts()
	if err != nil {
		applog.Error(c, "resorts.new", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch new availability resorts"})
	}
	return c.JSON(resorts)
}

func (h *ResortHandler) Search(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Search query is required"})
	}
	resorts, err := h.Catalog.SearchResorts(q)
	if err != nil {
		applog.Error(c, "resorts.search", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to search resorts"})
	}
	return c.JSON(resorts)
}

func (h *ResortHandler) ByDestination(c *fiber.Ctx) error {
	dest, ok := validate.Q(c.Params("destination"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid destination"})
	}
	resorts, err := h.Catalog.ResortsByDestination(dest)
	if err != nil {
		applog.Error(c, "resorts.destination", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch resorts by destination"})
	}
	return c.JSON(resorts)
}

func (h *ResortHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid resort id"})
	}
	resort, err := h.Catalog.GetResort(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Resort not found"})
		}
		applog.Error(c, "resorts.get", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch resort"})
	}
	return c.JSON(resort)
}
