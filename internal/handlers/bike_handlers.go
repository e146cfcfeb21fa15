package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"motocase/internal/common"
	"motocase/internal/services"
)

type BikeHandlers struct {
	bikeService services.BikeService
}

func NewBikeHandlers(bikeService services.BikeService) *BikeHandlers {
	return &BikeHandlers{bikeService: bikeService}
}

func (h *BikeHandlers) CreateBike(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateBikeRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	bike, err := h.bikeService.Create(c.Request().Context(), identity, &req)
	if err != nil {
		return serviceError(c, err, "bike")
	}
	return c.JSON(http.StatusCreated, bike)
}

func (h *BikeHandlers) GetBike(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "bike ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	bike, err := h.bikeService.GetByID(c.Request().Context(), identity, id)
	if err != nil {
		return serviceError(c, err, "bike")
	}
	return c.JSON(http.StatusOK, bike)
}

func (h *BikeHandlers) UpdateBike(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "bike ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.UpdateBikeRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	req.ID = id

	if err := h.bikeService.Update(c.Request().Context(), identity, &req); err != nil {
		return serviceError(c, err, "bike")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Bike updated"})
}

func (h *BikeHandlers) DeleteBike(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "bike ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.bikeService.Delete(c.Request().Context(), identity, id); err != nil {
		return serviceError(c, err, "bike")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Bike deleted"})
}

func (h *BikeHandlers) ListBikes(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	workspaceID, err := optionalWorkspaceParam(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	limit, offset := paginationParams(c)

	bikes, err := h.bikeService.List(c.Request().Context(), identity, workspaceID, limit, offset)
	if err != nil {
		return serviceError(c, err, "bikes")
	}
	return c.JSON(http.StatusOK, map[string]any{"bikes": bikes})
}
