package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/apierror"
	"github.com/niranjanreddy03/herb-provenance-chain/internal/ledger"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeError maps the ledger error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a storage/internal failure and stays opaque.
func writeError(c *gin.Context, err error) {
	var vErr *ledger.ValidationError
	var oErr *ledger.OrderingError
	var mErr *ledger.MalformedTokenError

	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, apierror.NewValidation(vErr.Fields))
	case errors.As(err, &mErr):
		c.JSON(http.StatusBadRequest, apierror.New(mErr.Error()))
	case errors.Is(err, ledger.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("record not found"))
	case errors.As(err, &oErr):
		c.JSON(http.StatusConflict, apierror.New(oErr.Error()))
	case errors.Is(err, ledger.ErrStorageTimeout):
		c.JSON(http.StatusInternalServerError, apierror.New("storage timeout, retry later"))
	default:
		// Opaque 500 — details go to the log via the error middleware.
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("internal server error"))
	}
}
