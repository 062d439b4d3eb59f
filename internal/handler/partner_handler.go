package handler

import (
	"go-pos-backoffice/internal/cache"
	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// PartnerHandler covers customers and suppliers. Both are plain CRUD with
// no business rules, so it talks to the repositories directly.
type PartnerHandler struct {
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	refCache     *cache.Store
}

func NewPartnerHandler(customerRepo repository.CustomerRepository, supplierRepo repository.SupplierRepository, refCache *cache.Store) *PartnerHandler {
	return &PartnerHandler{
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		refCache:     refCache,
	}
}

// POST /api/v1/customers
func (h *PartnerHandler) CreateCustomer(c *fiber.Ctx) error {
	var customer model.Customer
	if err := c.BodyParser(&customer); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if customer.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}
	if customer.Channel == "" {
		customer.Channel = model.ChannelWalkIn
	}

	customer.CreatedBy = getUserID(c)
	if err := h.customerRepo.Create(&customer); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	h.refCache.Invalidate(cache.KeyCustomers)
	return c.Status(201).JSON(fiber.Map{"message": "Customer created", "data": customer})
}

// GET /api/v1/customers?q=&page=&page_size=
func (h *PartnerHandler) GetCustomers(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)

	customers, total, err := h.customerRepo.Search(c.Query("q"), page, pageSize)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(paginated(customers, total, page, pageSize))
}

// GET /api/v1/customers/:id
func (h *PartnerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	customer, err := h.customerRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Customer not found"})
	}
	return c.JSON(customer)
}

// PUT /api/v1/customers/:id
func (h *PartnerHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	existing, err := h.customerRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Customer not found"})
	}

	var req model.Customer
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	existing.Name = req.Name
	existing.Phone = req.Phone
	existing.Address = req.Address
	existing.Notes = req.Notes
	existing.IsActive = req.IsActive
	if req.Channel != "" {
		existing.Channel = req.Channel
	}
	existing.UpdatedBy = getUserID(c)

	if err := h.customerRepo.Update(existing); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	h.refCache.Invalidate(cache.KeyCustomers)
	return c.JSON(fiber.Map{"message": "Customer updated", "data": existing})
}

// DELETE /api/v1/customers/:id
func (h *PartnerHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	if err := h.customerRepo.Delete(id); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	h.refCache.Invalidate(cache.KeyCustomers)
	return c.JSON(fiber.Map{"message": "Customer deleted"})
}

// POST /api/v1/suppliers
func (h *PartnerHandler) CreateSupplier(c *fiber.Ctx) error {
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if supplier.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}

	supplier.CreatedBy = getUserID(c)
	if err := h.supplierRepo.Create(&supplier); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	h.refCache.Invalidate(cache.KeySuppliers)
	return c.Status(201).JSON(fiber.Map{"message": "Supplier created", "data": supplier})
}

// GET /api/v1/suppliers?q=&page=&page_size=
func (h *PartnerHandler) GetSuppliers(c *fiber.Ctx) error {
	page, pageSize := parsePagination(c)

	suppliers, total, err := h.supplierRepo.Search(c.Query("q"), page, pageSize)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(paginated(suppliers, total, page, pageSize))
}

// GET /api/v1/suppliers/:id
func (h *PartnerHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	supplier, err := h.supplierRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Supplier not found"})
	}
	return c.JSON(supplier)
}

// PUT /api/v1/suppliers/:id
func (h *PartnerHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	existing, err := h.supplierRepo.FindByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Supplier not found"})
	}

	var req model.Supplier
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	existing.Name = req.Name
	existing.ContactPerson = req.ContactPerson
	existing.Phone = req.Phone
	existing.Address = req.Address
	existing.Notes = req.Notes
	existing.IsActive = req.IsActive
	existing.UpdatedBy = getUserID(c)

	if err := h.supplierRepo.Update(existing); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	h.refCache.Invalidate(cache.KeySuppliers)
	return c.JSON(fiber.Map{"message": "Supplier updated", "data": existing})
}

// DELETE /api/v1/suppliers/:id
func (h *PartnerHandler) DeleteSupplier(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	if err := h.supplierRepo.Delete(id); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	h.refCache.Invalidate(cache.KeySuppliers)
	return c.JSON(fiber.Map{"message": "Supplier deleted"})
}
