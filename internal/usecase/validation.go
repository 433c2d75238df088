package usecase

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/bistro/internal/domain/errors"
	"github.com/polkiloo/bistro/internal/domain/model"
)

var imageURLPattern = regexp.MustCompile(`^https?://.+\..+`)

// validate is shared by every use case; validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return model.Category(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return model.OrderStatus(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("imageurl", func(fl validator.FieldLevel) bool {
		return imageURLPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("ingredients", validateIngredients)
	_ = v.RegisterValidation("maxeach", validateMaxEach)
	_ = v.RegisterValidation("cents", validateCents)
	return v
}

// validateCents rejects amounts finer than a cent. Decimals reach validators as
// float64, so the shortest round-tripping decimal form is inspected.
func validateCents(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Float64 {
		return false
	}
	return decimal.NewFromFloat(field.Float()).Exponent() >= -2
}

// validateIngredients accepts an absent list or a non-empty list of non-blank entries.
func validateIngredients(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	if field.IsNil() {
		return true
	}
	if field.Len() == 0 {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		if strings.TrimSpace(field.Index(i).String()) == "" {
			return false
		}
	}
	return true
}

func validateMaxEach(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	field := fl.Field()
	for i := 0; i < field.Len(); i++ {
		if utf8.RuneCountInString(strings.TrimSpace(field.Index(i).String())) > limit {
			return false
		}
	}
	return true
}

// fieldMessages maps a field and failed tag to the message returned to clients.
// The empty tag is the fallback for the field.
var fieldMessages = map[string]map[string]string{
	"name": {
		"required": "Name is required",
		"max":      "Name cannot exceed 100 characters",
	},
	"description": {"": "Description cannot exceed 500 characters"},
	"category":    {"": "Category must be one of: Appetizer, Main Course, Dessert, Beverage"},
	"price": {
		"required": "Price is required",
		"cents":    "Price cannot have more than 2 decimal places",
		"":         "Price must be between 0 and 9999.99",
	},
	"ingredients": {
		"maxeach": "Ingredient name cannot exceed 50 characters",
		"":        "Ingredients array must contain non-empty strings",
	},
	"preparationTime": {"": "Preparation time must be between 1 and 180 minutes"},
	"imageUrl":        {"": "Image URL must be a valid URL"},
	"items":           {"": "Items array is required and must contain at least one item"},
	"menuItem":        {"": "Valid menu item ID is required for each item"},
	"quantity":        {"": "Quantity must be between 1 and 99 for each item"},
	"customerName": {
		"required": "Customer name is required",
		"max":      "Customer name cannot exceed 100 characters",
	},
	"tableNumber": {"": "Table number must be between 1 and 99"},
	"status":      {"": "Status must be one of: Pending, Preparing, Ready, Delivered, Cancelled"},
}

func fieldMessage(fe validator.FieldError) string {
	if byTag, ok := fieldMessages[fe.Field()]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
		if msg, ok := byTag[""]; ok {
			return msg
		}
	}
	return fe.Field() + " is invalid"
}

// fieldPath drops the root struct name from the namespace, keeping list indexes.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

// validateStruct runs tag validation and converts failures into a ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	fields := make([]domainErrors.FieldError, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, domainErrors.FieldError{Field: fieldPath(fe), Message: fieldMessage(fe)})
	}
	return &domainErrors.ValidationError{Fields: fields}
}

func invalidField(field, message string) error {
	return &domainErrors.ValidationError{Fields: []domainErrors.FieldError{{Field: field, Message: message}}}
}

// checkID rejects identifiers that are not UUIDs before they reach storage.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domainErrors.ErrMalformedID
	}
	return nil
}
