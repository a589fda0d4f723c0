package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dnsveil/internal/api/models"
	"dnsveil/internal/database"
	"dnsveil/internal/steg"
)

// requireDB answers 503 and returns false when persistence is disabled.
func (h *Handler) requireDB(c *gin.Context) bool {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "profile store disabled"})
		return false
	}
	return true
}

// ListProfiles godoc
// @Summary List encoding profiles
// @Tags profiles
// @Produce json
// @Success 200 {array} database.Profile
// @Security ApiKeyAuth
// @Router /profiles [get]
func (h *Handler) ListProfiles(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	profiles, err := h.db.ListProfiles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	if profiles == nil {
		profiles = []database.Profile{}
	}
	c.JSON(http.StatusOK, profiles)
}

// SaveProfile godoc
// @Summary Create or update an encoding profile
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body models.ProfileRequest true "profile"
// @Success 200 {object} models.StatusResponse
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles [post]
func (h *Handler) SaveProfile(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	var req models.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	if _, err := steg.ParseStrategy(req.Strategy); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	if req.MaxTXTLength < 0 || req.MaxTXTLength > 255 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "max_txt_length must be 0..255"})
		return
	}

	err := h.db.SaveProfile(database.Profile{
		Name:           req.Name,
		Strategy:       req.Strategy,
		MaxTXTLength:   req.MaxTXTLength,
		MaxFragments:   req.MaxFragments,
		UseCompression: req.UseCompression,
		RandomizeOrder: req.RandomizeOrder,
		NoiseRatio:     req.NoiseRatio,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "saved"})
}

// GetProfile godoc
// @Summary Fetch one encoding profile
// @Tags profiles
// @Produce json
// @Param name path string true "profile name"
// @Success 200 {object} database.Profile
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{name} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	profile, err := h.db.GetProfile(c.Param("name"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, database.ErrProfileNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteProfile godoc
// @Summary Delete an encoding profile
// @Tags profiles
// @Produce json
// @Param name path string true "profile name"
// @Success 200 {object} models.StatusResponse
// @Failure 404 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /profiles/{name} [delete]
func (h *Handler) DeleteProfile(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	if err := h.db.DeleteProfile(c.Param("name")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, database.ErrProfileNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{Status: "deleted"})
}

// Journal godoc
// @Summary Recent transfer journal entries
// @Tags profiles
// @Produce json
// @Param limit query int false "max entries (default 50)"
// @Success 200 {array} database.TransferRecord
// @Security ApiKeyAuth
// @Router /journal [get]
func (h *Handler) Journal(c *gin.Context) {
	if !h.requireDB(c) {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	records, err := h.db.RecentTransfers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	if records == nil {
		records = []database.TransferRecord{}
	}
	c.JSON(http.StatusOK, records)
}
