package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// registerCustomValidators installs the binding rules shared by the
// posting DTOs on gin's validator engine.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("money", validMoneyAmount)
	}
}

// validMoneyAmount accepts positive amounts with at most two decimal
// places. The ledger stores minor units, so sub-paisa precision would
// silently truncate; it is rejected here instead.
func validMoneyAmount(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.IsPositive() && d.Equal(d.Truncate(2))
}
