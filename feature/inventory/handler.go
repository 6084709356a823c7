package inventory

import (
	"errors"

	"inventory-manager/core/logger"
	"inventory-manager/feature/inventory/asset"
	"inventory-manager/feature/inventory/document"
	"inventory-manager/feature/inventory/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for inventories.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Post("/", h.HandleSubmit)
	group.Post("/unmanaged", h.HandleRegisterUnmanaged)
	group.Get("/agents/:deviceid", h.HandleGetAgent)
}

// HandleSubmit processes an inventory document.
// @Summary Submit Inventory
// @Description Normalize an agent inventory and reconcile it with stored items.
// @Tags inventory
// @Accept json
// @Produce json
// @Param dry_run query bool false "Compute plans without writing"
// @Success 200 {object} pipeline.Result "Acknowledgement"
// @Failure 422 {object} pipeline.Result "Rejected document"
// @Failure 500 {object} pipeline.Result "Aborted run"
// @Router /inventory [post]
func (h *Handler) HandleSubmit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	res, err := h.service.Submit(c.UserContext(), c.Body(), c.QueryBool("dry_run"))
	if err != nil {
		status := statusFor(err)
		l.Warn("Inventory rejected", zap.String("run_id", res.RunID), zap.Int("status", status), zap.Error(err))
		return c.Status(status).JSON(res)
	}

	return c.JSON(res)
}

type unmanagedRequest struct {
	Name string   `json:"name"`
	MACs []string `json:"macs"`
}

// HandleRegisterUnmanaged registers a placeholder device owning the given MACs.
// @Summary Register Unmanaged Device
// @Tags inventory
// @Accept json
// @Produce json
// @Success 201 {object} models.UnmanagedDevice "Created"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /inventory/unmanaged [post]
func (h *Handler) HandleRegisterUnmanaged(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req unmanagedRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	device, err := h.service.RegisterUnmanaged(c.UserContext(), req.Name, req.MACs)
	if errors.Is(err, ErrNoPorts) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Unmanaged registration failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(device)
}

// HandleGetAgent returns the agent record of a device.
// @Summary Get Agent
// @Tags inventory
// @Produce json
// @Param deviceid path string true "Device identifier"
// @Success 200 {object} models.Agent "Agent"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /inventory/agents/{deviceid} [get]
func (h *Handler) HandleGetAgent(c *fiber.Ctx) error {
	deviceID := c.Params("deviceid")

	agent, err := h.service.Agent(c.UserContext(), deviceID)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Agent lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if agent == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "agent not found"})
	}

	return c.JSON(agent)
}

// statusFor maps a fatal run error to an HTTP status.
func statusFor(err error) int {
	var (
		schemaErr   *document.SchemaValidationError
		sectionErr  *document.UnsupportedSectionError
		metadataErr *document.MetadataError
		ownerErr    *asset.OwnerTypeError
	)
	switch {
	case errors.As(err, &schemaErr), errors.As(err, &sectionErr), errors.As(err, &metadataErr), errors.As(err, &ownerErr):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, store.ErrLockTimeout):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
