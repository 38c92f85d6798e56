package handlers

import (
	"database/sql"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"resortshare/internal/domain"
	applog "resortshare/internal/log"
	"resortshare/internal/objectstore"
	"resortshare/internal/services"
	"resortshare/internal/validate"
)

type ListingHandler struct {
	Listings *services.ListingService
	Store    objectstore.Store
}

type createListingRequest struct {
	ResortID      string `json:"resortId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	PricePerNight int    `json:"pricePerNight"`
	AvailableFrom string `json:"availableFrom"`
	AvailableTo   string `json:"availableTo"`
	MaxGuests     int    `json:"maxGuests"`
	SalePrice     int    `json:"salePrice"`
	IsForSale     bool   `json:"isForSale"`
}

func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var req createListingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid listing data"})
	}
	if _, ok := validate.ID(req.ResortID); !ok || req.Title == "" || req.PricePerNight < 0 || req.MaxGuests < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid listing data"})
	}
	u, _ := c.Locals("user").(*domain.User)
	if u == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authenticated"})
	}

	listing, err := h.Listings.Create(domain.Listing{
		ResortID:      req.ResortID,
		OwnerID:       u.ID,
		Title:         req.Title,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		AvailableFrom: req.AvailableFrom,
		AvailableTo:   req.AvailableTo,
		MaxGuests:     req.MaxGuests,
		SalePrice:     req.SalePrice,
		IsForSale:     req.IsForSale,
	})
	if err != nil {
		applog.Error(c, "listings.create", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create listing"})
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

func (h *ListingHandler) ByOwner(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}
	listings, err := h.Listings.ByOwner(id)
	if err != nil {
		applog.Error(c, "listings.list", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch listings"})
	}
	return c.JSON(listings)
}

// UploadContract accepts a multipart contract document and stores it,
// returning the public path to attach to a listing.
func (h *ListingHandler) UploadContract(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Contract file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		applog.Error(c, "contracts.upload", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to process contract upload"})
	}
	defer f.Close()

	path, err := h.Store.Save(fh.Filename, f)
	if err != nil {
		applog.Error(c, "contracts.upload", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to process contract upload"})
	}
	applog.Audit(c, "contracts.upload", map[string]any{"path": path})
	return c.JSON(fiber.Map{"contractPath": path})
}

func (h *ListingHandler) DownloadContract(c *fiber.Ctx) error {
	path := "/contracts/" + c.Params("*")
	obj, err := h.Store.Open(path)
	if err != nil {
		if errors.Is(err, objectstore.ErrObjectNotFound) {
			applog.Security(c, "contracts.download.miss", map[string]any{"path": path})
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Contract not found"})
		}
		applog.Error(c, "contracts.download", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to download contract"})
	}
	defer obj.Close()

	c.Set("Content-Type", "application/octet-stream")
	data, err := io.ReadAll(obj)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to download contract"})
	}
	return c.Send(data)
}

type attachContractRequest struct {
	ContractDocumentURL string `json:"contractDocumentUrl"`
}

func (h *ListingHandler) AttachContract(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid listing id"})
	}
	var req attachContractRequest
	if err := c.BodyParser(&req); err != nil || req.ContractDocumentURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Contract document URL is required"})
	}

	listing, err := h.Listings.AttachContract(id, req.ContractDocumentURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Listing not found"})
		}
		applog.Error(c, "listings.contract", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to process contract upload"})
	}
	return c.JSON(fiber.Map{
		"contractPath": listing.ContractDocumentURL,
		"message":      "Contract uploaded successfully",
	})
}

type escrowRequest struct {
	Action    string `json:"action"`
	SalePrice int    `json:"salePrice"`
}

func (h *ListingHandler) Escrow(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid listing id"})
	}
	var req escrowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid escrow request"})
	}
	if req.Action != "initiate" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid escrow action"})
	}

	_, escrowID, err := h.Listings.InitiateEscrow(id, req.SalePrice)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Listing not found"})
		}
		applog.Error(c, "listings.escrow", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to manage escrow"})
	}
	return c.JSON(fiber.Map{
		"escrowAccountId": escrowID,
		"status":          "initiated",
		"salePrice":       req.SalePrice,
		"instructions":    "Please complete ownership verification before proceeding with escrow.",
	})
}
