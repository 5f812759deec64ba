package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/maxviazov/clinic-admin-service/internal/query"
)

// Limits bounds list requests accepted from clients.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

func (l Limits) withDefaults() Limits {
	if l.DefaultSize <= 0 {
		l.DefaultSize = 10
	}
	if l.MaxSize < l.DefaultSize {
		l.MaxSize = max(100, l.DefaultSize)
	}
	return l
}

var validate = newValidator()

// newValidator reports fields under their JSON names so clients see the
// names they sent.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateRequest(req query.Request, l Limits) error {
	var ferrs []FieldError
	if req.Page < 0 {
		ferrs = append(ferrs, FieldError{Field: "page", Message: "must be >= 0"})
	}
	switch {
	case req.Size <= 0:
		ferrs = append(ferrs, FieldError{Field: "size", Message: "must be > 0"})
	case req.Size > l.MaxSize:
		ferrs = append(ferrs, FieldError{Field: "size", Message: fmt.Sprintf("must be <= %d", l.MaxSize)})
	}
	if _, err := query.ParseDirection(string(req.SortDirection)); err != nil {
		ferrs = append(ferrs, FieldError{Field: "sortDirection", Message: "must be asc or desc"})
	}
	return NewInvalidInputError(ferrs)
}

func validateRecord(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ferrs := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		ferrs = append(ferrs, FieldError{Field: fe.Field(), Message: describe(fe)})
	}
	return NewInvalidInputError(ferrs)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be > " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// fromArgument turns an engine rejection into the service's validation error.
func fromArgument(err error) error {
	var argErr *query.ArgumentError
	if errors.As(err, &argErr) {
		return NewInvalidInputError([]FieldError{{Field: argErr.Field, Message: argErr.Message}})
	}
	return err
}
