package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/apierror"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/dto"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/service"
)

// ResolveHandler serves the consumer-facing product lookup. No authentication:
// anyone holding a printed code can verify the product behind it.
type ResolveHandler struct{ svc service.ResolveService }

func NewResolveHandler(svc service.ResolveService) *ResolveHandler {
	return &ResolveHandler{svc: svc}
}

// Resolve accepts a token in the request body — a transaction id, a record
// id, or the JSON payload embedded in a scanned code.
func (h *ResolveHandler) Resolve(c *gin.Context) {
	var req dto.ResolveRequest
	if !bindAndValidate(c, &req) {
		return
	}
	h.resolve(c, req.Token)
}

// ResolveQuery is the GET form used by scanner clients: /v1/resolve?token=...
func (h *ResolveHandler) ResolveQuery(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, apierror.New("missing token parameter"))
		return
	}
	h.resolve(c, token)
}

func (h *ResolveHandler) resolve(c *gin.Context, token string) {
	resp, err := h.svc.Resolve(c.Request.Context(), token)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
