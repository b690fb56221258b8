// Package validator provides the request validation layer: custom rules for
// Gin's binding engine and a transport-independent Decode/Check pair that
// turns a raw payload into a normalized value or a list of field violations.
package validator

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"fintrack/internal/models"
)

var registerOnce sync.Once

// Register registers all custom validators with the Gin binding engine.
// It is safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(jsonFieldName)
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

		_ = v.RegisterValidation("money", validateMoney)
		_ = v.RegisterValidation("category_id", validateCategoryID)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("category_type", validateCategoryType)
		_ = v.RegisterValidation("flexdate", validateFlexDate)
	})
}

// Engine returns the shared validator instance with all custom rules registered.
func Engine() *validator.Validate {
	Register()
	v, _ := binding.Validator.Engine().(*validator.Validate)
	return v
}

// jsonFieldName reports violations under the JSON name clients send.
func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// decimalValue lets numeric rules such as gt=0 apply to decimal amounts.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

// maxMoney is the smallest amount a numeric(14,2) column cannot hold.
var maxMoney = decimal.New(1, 12)

// validateMoney accepts positive amounts with at most two decimal places
// that fit the money columns.
func validateMoney(fl validator.FieldLevel) bool {
	d, ok := decimalField(fl)
	if !ok {
		return false
	}
	return d.IsPositive() && d.Equal(d.Truncate(2)) && d.LessThan(maxMoney)
}

// decimalField reads the exact decimal behind fl. The registered type func
// hands rules a float64, so the original value is taken from the parent struct.
func decimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	parent := reflect.Indirect(fl.Parent())
	if parent.Kind() == reflect.Struct {
		if f := reflect.Indirect(parent.FieldByName(fl.StructFieldName())); f.IsValid() {
			if d, ok := f.Interface().(decimal.Decimal); ok {
				return d, true
			}
		}
	}

	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		return decimal.NewFromFloat(fl.Field().Float()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(fl.Field().Int()), true
	case reflect.String:
		d, err := decimal.NewFromString(fl.Field().String())
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

func validateCategoryID(fl validator.FieldLevel) bool {
	return models.IsCategoryID(fl.Field().String())
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return models.TransactionType(fl.Field().String()).Valid()
}

func validateCategoryType(fl validator.FieldLevel) bool {
	return models.CategoryType(fl.Field().String()).Valid()
}

func validateFlexDate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}
