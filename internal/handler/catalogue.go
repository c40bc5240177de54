// Package handler exposes HTTP handlers.  This file serves the read-only
// catalogue: companies, facilities and the user lookup.  Handlers return
// the model types directly; there are no sensitive columns to filter.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/facility-booking/internal/model"
	"github.com/iliyamo/facility-booking/internal/repository"
)

// CompanyReader is implemented by repository.CompanyRepo.
type CompanyReader interface {
	ListAll(ctx context.Context) ([]model.Company, error)
	GetByID(ctx context.Context, id string) (*model.Company, error)
}

// FacilityReader is implemented by repository.FacilityRepo.
type FacilityReader interface {
	ListAll(ctx context.Context) ([]model.Facility, error)
	GetByID(ctx context.Context, id string) (*model.Facility, error)
}

// UserReader is implemented by repository.UserRepo.
type UserReader interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// CatalogueHandler aggregates the read-side repositories.
type CatalogueHandler struct {
	Companies  CompanyReader
	Facilities FacilityReader
	Users      UserReader
}

// ListCompanies handles GET /companies.
func (h *CatalogueHandler) ListCompanies(c echo.Context) error {
	items, err := h.Companies.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list companies: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, items)
}

// GetCompany handles GET /companies/:id.
func (h *CatalogueHandler) GetCompany(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	co, err := h.Companies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "company not found"})
		}
		c.Logger().Errorf("get company %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, co)
}

// ListFacilities handles GET /facilities.
func (h *CatalogueHandler) ListFacilities(c echo.Context) error {
	items, err := h.Facilities.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("list facilities: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, items)
}

// GetFacility handles GET /facilities/:id.
func (h *CatalogueHandler) GetFacility(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	f, err := h.Facilities.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFacilityNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "facility not found"})
		}
		c.Logger().Errorf("get facility %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, f)
}

// GetUser handles GET /users/:user_id.
func (h *CatalogueHandler) GetUser(c echo.Context) error {
	id := strings.TrimSpace(c.Param("user_id"))
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		c.Logger().Errorf("get user %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, u)
}
