package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/apierror"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/dto"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/service"
)

type CollectionsHandler struct{ svc service.CollectionService }

func NewCollectionsHandler(svc service.CollectionService) *CollectionsHandler {
	return &CollectionsHandler{svc: svc}
}

// Submit records a new harvest: validates, stamps fingerprint + transaction
// id, and persists the record with its opening timeline event.
func (h *CollectionsHandler) Submit(c *gin.Context) {
	var req dto.SubmitCollectionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CollectionsHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid record id"))
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CollectionsHandler) List(c *gin.Context) {
	var filter dto.CollectionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CollectionsHandler) AppendEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid record id"))
		return
	}
	var req dto.AppendEventRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AppendEvent(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CollectionsHandler) AddLabResult(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid record id"))
		return
	}
	var req dto.AddLabResultRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddLabResult(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
