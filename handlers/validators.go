package handlers

import (
	"errors"
	"reflect"
	"strconv"

	"restaurant-orders-api/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators teaches gin's validator to compare money fields as numbers,
// so tags like gte=0 work on models.Money
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected validator engine")
	}
	v.RegisterCustomTypeFunc(moneyValue, models.Money{})
	return nil
}

func moneyValue(field reflect.Value) interface{} {
	if m, ok := field.Interface().(models.Money); ok {
		f, _ := m.Float64()
		return f
	}
	return nil
}

// parseID reads a positive integer path parameter, writing a 400 when it is malformed
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		badRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
