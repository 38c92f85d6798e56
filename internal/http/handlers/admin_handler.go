package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"resortshare/internal/domain"
	applog "resortshare/internal/log"
	"resortshare/internal/repos"
	"resortshare/internal/validate"
)

type AdminHandler struct {
	Users     *repos.UserRepo
	Resorts   *repos.ResortRepo
	Settings  *repos.SettingRepo
	Inquiries *repos.InquiryRepo
}

// ---------- Users ----------

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		applog.Error(c, "admin.users.list", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to get users"})
	}
	return c.JSON(users)
}

type updateUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}
	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user data"})
	}
	if _, ok := validate.Email(req.Email); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid email"})
	}
	if _, ok := validate.Username(req.Username); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid username"})
	}
	if req.Role != "" && req.Role != "USER" && req.Role != "ADMIN" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid role"})
	}

	u, err := h.Users.Update(id, req.Username, req.Email, req.FirstName, req.LastName, req.Role)
	if err != nil {
		if isNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		applog.Error(c, "admin.users.update", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update user"})
	}
	applog.Audit(c, "admin.users.update", map[string]any{"target": id})
	return c.JSON(u)
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	}
	if err := h.Users.Delete(id); err != nil {
		if isNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		applog.Error(c, "admin.users.delete", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete user"})
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"target": id})
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}

// ---------- Resorts ----------

func (h *AdminHandler) CreateResort(c *fiber.Ctx) error {
	var req domain.InsertResort
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid resort data"})
	}
	if req.Name == "" || req.PriceMin < 0 || req.PriceMax < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid resort data"})
	}
	resort, err := h.Resorts.Create(req)
	if err != nil {
		applog.Error(c, "admin.resorts.create", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create resort"})
	}
	applog.Audit(c, "admin.resorts.create", map[string]any{"resort": resort.ID})
	return c.JSON(resort)
}

func (h *AdminHandler) UpdateResort(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid resort id"})
	}
	var req domain.InsertResort
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid resort data"})
	}
	resort, err := h.Resorts.Update(id, req)
	if err != nil {
		if isNotFound(err) || errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Resort not found"})
		}
		applog.Error(c, "admin.resorts.update", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update resort"})
	}
	applog.Audit(c, "admin.resorts.update", map[string]any{"resort": id})
	return c.JSON(resort)
}

func (h *AdminHandler) DeleteResort(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid resort id"})
	}
	if err := h.Resorts.Delete(id); err != nil {
		if isNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Resort not found"})
		}
		applog.Error(c, "admin.resorts.delete", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete resort"})
	}
	applog.Audit(c, "admin.resorts.delete", map[string]any{"resort": id})
	return c.JSON(fiber.Map{"message": "Resort deleted successfully"})
}

// ---------- Site settings ----------

func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	if cat := c.Query("category"); cat != "" {
		settings, err := h.Settings.ByCategory(cat)
		if err != nil {
			applog.Error(c, "admin.settings.list", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch site settings"})
		}
		return c.JSON(settings)
	}
	settings, err := h.Settings.All()
	if err != nil {
		applog.Error(c, "admin.settings.list", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch site settings"})
	}
	return c.JSON(settings)
}

func (h *AdminHandler) GetSetting(c *fiber.Ctx) error {
	key, ok := validate.ID(c.Params("key"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid setting key"})
	}
	setting, err := h.Settings.Get(key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Setting not found"})
		}
		applog.Error(c, "admin.settings.get", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch site setting"})
	}
	return c.JSON(setting)
}

func (h *AdminHandler) SetSetting(c *fiber.Ctx) error {
	var req domain.SiteSetting
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid setting data"})
	}
	if key := c.Params("key"); key != "" {
		req.Key = key
	}
	if _, ok := validate.ID(req.Key); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid setting data"})
	}
	setting, err := h.Settings.Set(req)
	if err != nil {
		applog.Error(c, "admin.settings.set", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update site setting"})
	}
	applog.Audit(c, "admin.settings.set", map[string]any{"key": req.Key})
	return c.JSON(setting)
}

func (h *AdminHandler) DeleteSetting(c *fiber.Ctx) error {
	key, ok := validate.ID(c.Params("key"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid setting key"})
	}
	if err := h.Settings.Delete(key); err != nil {
		if isNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Setting not found"})
		}
		applog.Error(c, "admin.settings.delete", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete site setting"})
	}
	applog.Audit(c, "admin.settings.delete", map[string]any{"key": key})
	return c.JSON(fiber.Map{"message": "Setting deleted successfully"})
}
