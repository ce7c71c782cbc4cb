package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/service"
	"github.com/spec-kit/inventory-service/internal/storage"
	apperrors "github.com/spec-kit/inventory-service/pkg/util/errorutil"
)

// FloorsHandler exposes floor and room endpoints.
type FloorsHandler struct {
	floors *service.FloorService
}

// NewFloorsHandler constructs handler.
func NewFloorsHandler(floorService *service.FloorService) *FloorsHandler {
	return &FloorsHandler{floors: floorService}
}

// List handles GET /api/floors. Scoped to the caller's team; callers
// without a team see everything.
func (h *FloorsHandler) List(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	floors, err := h.floors.ListFloors(c.UserContext(), principal.TeamID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewFloorResponses(floors)})
}

// Create handles POST /api/floors.
func (h *FloorsHandler) Create(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.FloorCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	floor, err := h.floors.CreateFloor(c.UserContext(), *principal.TeamID, req.Name, req.Description)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewFloorResponse(floor)})
}

// CreateRoom handles POST /api/rooms.
func (h *FloorsHandler) CreateRoom(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.RoomCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.FloorID == 0 {
		return apperrors.NewValidationError("floor_id required", nil)
	}

	room, err := h.floors.CreateRoom(c.UserContext(), *principal.TeamID, principal.User.ID, req.FloorID, req.Name, req.Description)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewRoomResponse(room)})
}

// UpdateRoom handles PUT /api/rooms/:id.
func (h *FloorsHandler) UpdateRoom(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid room id", nil)
	}

	var req dto.RoomUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	room, err := h.floors.UpdateRoom(c.UserContext(), *principal.TeamID, principal.User.ID, id, storage.RoomChanges{
		Name:        req.Name,
		Description: req.Description,
		FloorID:     req.FloorID,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewRoomResponse(room)})
}

// DeleteRoom handles DELETE /api/rooms/:id.
func (h *FloorsHandler) DeleteRoom(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid room id", nil)
	}

	if err := h.floors.DeleteRoom(c.UserContext(), *principal.TeamID, principal.User.ID, id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}
