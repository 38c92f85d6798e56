package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"resortshare/internal/inventory"
	applog "resortshare/internal/log"
	"resortshare/internal/validate"
)

type InventoryHandler struct {
	Inv     *inventory.Service
	Persist inventory.PersistFunc
}

func (h *InventoryHandler) Providers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"providers": h.Inv.Providers()})
}

type syncRequest struct {
	Filters *inventory.Filters `json:"filters"`
}

func (h *InventoryHandler) parseFilters(c *fiber.Ctx) (*inventory.Filters, bool) {
	var req syncRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return nil, false
		}
	}
	f := req.Filters
	if f == nil {
		return nil, true
	}
	if f.PriceMin < 0 || f.PriceMax < 0 {
		return nil, false
	}
	if f.Destination != "" {
		dest, ok := validate.Q(f.Destination)
		if !ok {
			return nil, false
		}
		f.Destination = dest
	}
	// The boundary clamps limit to 1..100; the sync core imposes no bound.
	if f.Limit < 0 {
		return nil, false
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	return f, true
}

// Preview runs fetch and transform without persisting anything.
func (h *InventoryHandler) Preview(c *fiber.Ctx) error {
	provider := c.Params("provider")
	filters, ok := h.parseFilters(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid sync filters"})
	}

	result, err := h.Inv.Sync(c.Context(), provider, filters, nil)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	}
	applog.Info(c, "inventory.preview", map[string]any{"provider": provider, "total": result.Total})
	return c.JSON(struct {
		*inventory.SyncResult
		Preview bool   `json:"preview"`
		Message string `json:"message"`
	}{result, true, "Preview only - no data was saved"})
}

// Sync commits the transformed batch to the catalog.
func (h *InventoryHandler) Sync(c *fiber.Ctx) error {
	provider := c.Params("provider")
	filters, ok := h.parseFilters(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid sync filters"})
	}

	result, err := h.Inv.Sync(c.Context(), provider, filters, h.Persist)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	}
	applog.Audit(c, "inventory.sync", map[string]any{
		"provider": provider, "total": result.Total,
		"imported": result.Imported, "errors": len(result.Errors),
	})
	return c.JSON(result)
}

func (h *InventoryHandler) Authenticate(c *fiber.Ctx) error {
	provider := c.Params("provider")
	credentials := map[string]string{}
	var body map[string]string
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid credentials"})
		}
		credentials = body
	}

	ok, err := h.Inv.AuthenticateProvider(c.Context(), provider, credentials)
	if errors.Is(err, inventory.ErrProviderNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	}
	if err != nil {
		applog.Warn(c, "inventory.authenticate", map[string]any{"provider": provider, "err": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": ok})
}

func (h *InventoryHandler) History(c *fiber.Ctx) error {
	limit := validate.Limit(c.Query("limit"), 10)
	return c.JSON(fiber.Map{"history": h.Inv.Recent(limit)})
}
