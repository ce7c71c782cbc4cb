package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inventory-service/internal/api/dto"
	"github.com/spec-kit/inventory-service/internal/auth"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/service"
	apperrors "github.com/spec-kit/inventory-service/pkg/util/errorutil"
)

// AssetsHandler exposes asset endpoints.
type AssetsHandler struct {
	assets *service.AssetService
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assetService *service.AssetService) *AssetsHandler {
	return &AssetsHandler{assets: assetService}
}

// List handles GET /api/assets. Scoped to the caller's team; callers
// without a team see everything.
func (h *AssetsHandler) List(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	assets, err := h.assets.ListAssets(c.UserContext(), principal.TeamID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewAssetResponses(assets)})
}

// Get handles GET /api/assets/:id.
func (h *AssetsHandler) Get(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid asset id", nil)
	}

	asset, err := h.assets.GetAsset(c.UserContext(), *principal.TeamID, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewAssetResponse(asset)})
}

// Create handles POST /api/assets.
func (h *AssetsHandler) Create(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.AssetCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	asset, err := h.assets.CreateAsset(c.UserContext(), *principal.TeamID, principal.User.ID, service.AssetCreateInput{
		Name:         req.Name,
		Code:         req.Code,
		Category:     req.Category,
		Description:  req.Description,
		Value:        req.Value,
		Status:       domain.AssetStatus(req.Status),
		FloorID:      req.FloorID,
		RoomID:       req.RoomID,
		Photo:        req.Photo,
		Supplier:     req.Supplier,
		SerialNumber: req.SerialNumber,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAssetResponse(asset)})
}

// Update handles PUT /api/assets/:id.
func (h *AssetsHandler) Update(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid asset id", nil)
	}

	var req dto.AssetUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	asset, err := h.assets.UpdateAsset(c.UserContext(), *principal.TeamID, principal.User.ID, id, req.Changes())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.NewAssetResponse(asset)})
}

// Delete handles DELETE /api/assets/:id.
func (h *AssetsHandler) Delete(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid asset id", nil)
	}

	if err := h.assets.DeleteAsset(c.UserContext(), *principal.TeamID, principal.User.ID, id); err != nil {
		return apperrors.MapError(err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// CheckCode handles GET /api/assets/check-code?code=X&exclude_id=N. The UI
// calls it while the form is being filled, ahead of submit.
func (h *AssetsHandler) CheckCode(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	code := c.Query("code")
	if code == "" {
		return apperrors.NewValidationError("code required", nil)
	}

	var excludeID int64
	if raw := c.Query("exclude_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return apperrors.NewValidationError("invalid exclude_id", nil)
		}
		excludeID = parsed
	}

	exists, err := h.assets.CheckCode(c.UserContext(), *principal.TeamID, code, excludeID)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.CheckCodeResponse{Exists: exists}})
}
