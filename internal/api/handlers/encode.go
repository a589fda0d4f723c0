package handlers

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"dnsveil/internal/api/models"
	"dnsveil/internal/dns"
	"dnsveil/internal/steg"
)

// Capacity godoc
// @Summary Capacity estimate
// @Description Returns the payload capacity of the active configuration
// @Tags encoding
// @Produce json
// @Success 200 {object} models.CapacityResponse
// @Security ApiKeyAuth
// @Router /capacity [get]
func (h *Handler) Capacity(c *gin.Context) {
	settings := h.cfg.EncoderSettings()
	c.JSON(http.StatusOK, models.CapacityResponse{
		Strategy:     settings.Strategy.String(),
		MaxFragments: settings.MaxFragments,
		TotalBytes:   steg.EstimateTotalCapacity(settings),
		PerTypeBytes: map[string]int{
			dns.TypeA.String():    steg.EstimateCapacity(dns.TypeA, settings.MaxFragments),
			dns.TypeAAAA.String(): steg.EstimateCapacity(dns.TypeAAAA, settings.MaxFragments),
			dns.TypeTXT.String():  steg.EstimateCapacity(dns.TypeTXT, settings.MaxFragments),
		},
	})
}

// EncodePreview godoc
// @Summary Dry-run encode
// @Description Encodes a payload and returns fragment metadata without transmitting anything
// @Tags encoding
// @Accept json
// @Produce json
// @Param request body models.EncodePreviewRequest true "payload to encode"
// @Success 200 {object} models.EncodePreviewResponse
// @Failure 400 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /encode/preview [post]
func (h *Handler) EncodePreview(c *gin.Context) {
	var req models.EncodePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	payload, err := base64.StdEncoding.DecodeString(req.PayloadBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "payload_base64 is not valid base64"})
		return
	}

	settings := h.cfg.EncoderSettings()
	if req.Profile != "" {
		if h.db == nil {
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "profile store disabled"})
			return
		}
		profile, err := h.db.GetProfile(req.Profile)
		if err != nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
			return
		}
		settings = profile.EncoderSettings()
	}

	baseDomain := h.cfg.Channel.BaseDomain
	if req.BaseDomain != "" {
		if !dns.ValidateName(req.BaseDomain) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "base_domain is not a valid domain name"})
			return
		}
		baseDomain = req.BaseDomain
	}

	encoder := steg.NewEncoder(settings, nil)
	res, err := encoder.EncodePayload(payload, baseDomain)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	resp := models.EncodePreviewResponse{
		Strategy:  settings.Strategy.String(),
		Truncated: res.Truncated,
		Fragments: make([]models.FragmentSummary, 0, len(res.Fragments)),
	}
	for _, frag := range res.Fragments {
		if frag.IsNoise() {
			resp.NoiseCount++
		} else {
			resp.FragmentCount++
		}
		resp.Fragments = append(resp.Fragments, models.FragmentSummary{
			ID:         frag.ID,
			RecordType: frag.RecordType.String(),
			Domain:     frag.Domain,
			DataBytes:  len(frag.Data),
			Noise:      frag.IsNoise(),
		})
	}
	c.JSON(http.StatusOK, resp)
}
