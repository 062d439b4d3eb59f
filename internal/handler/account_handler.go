package handler

import (
	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// AccountHandler manages cash, bank, and e-wallet accounts. Balances are
// only ever changed by the document services, never edited here.
type AccountHandler struct {
	accountRepo repository.AccountRepository
}

func NewAccountHandler(accountRepo repository.AccountRepository) *AccountHandler {
	return &AccountHandler{accountRepo: accountRepo}
}

// POST /api/v1/accounts
func (h *AccountHandler) CreateAccount(c *fiber.Ctx) error {
	var account model.Account
	if err := c.BodyParser(&account); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if account.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}
	switch account.Type {
	case model.AccountCash, model.AccountBank, model.AccountEwallet:
	default:
		return c.Status(400).JSON(fiber.Map{"error": "Type must be CASH, BANK, or EWALLET"})
	}

	account.CreatedBy = getUserID(c)
	if err := h.accountRepo.Create(&account); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Account created", "data": account})
}

// GET /api/v1/accounts?active=true
func (h *AccountHandler) GetAccounts(c *fiber.Ctx) error {
	var (
		accounts []model.Account
		err      error
	)
	if c.Query("active") == "true" {
		accounts, err = h.accountRepo.FindActive()
	} else {
		accounts, err = h.accountRepo.FindAll()
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(accounts)
}

// GET /api/v1/accounts/:id
func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid account ID"})
	}

	account, err := h.accountRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Account not found"})
	}
	return c.JSON(account)
}

// PUT /api/v1/accounts/:id
func (h *AccountHandler) UpdateAccount(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid account ID"})
	}

	existing, err := h.accountRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Account not found"})
	}

	var req model.Account
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	// CurrentBalance is deliberately not copied from the request body
	existing.Name = req.Name
	existing.Number = req.Number
	existing.IsActive = req.IsActive
	if req.Type != "" {
		existing.Type = req.Type
	}
	existing.UpdatedBy = getUserID(c)

	if err := h.accountRepo.Update(existing); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Account updated", "data": existing})
}

// DELETE /api/v1/accounts/:id
func (h *AccountHandler) DeleteAccount(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid account ID"})
	}

	if err := h.accountRepo.Delete(id); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Account deleted"})
}
