package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/viant/diffgate/inspector/graph"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	result := validator.New()
	result.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return result
}

// Validate checks scalar fields with struct tags, then the weight table and per kind limits
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			fieldErr := validationErrors[0]
			return &Error{Field: fieldPath(fieldErr.Namespace()), Message: describe(fieldErr)}
		}
		return fmt.Errorf("failed to validate config: %w", err)
	}
	if err := c.Weights.validate(); err != nil {
		return err
	}
	return c.Limits.validate()
}

func (w *Weights) validate() error {
	for _, kind := range sortedKeys(w.Table) {
		if _, ok := graph.ParseKind(string(kind)); !ok {
			return &Error{Field: "weights.table." + string(kind), Message: "unknown unit kind"}
		}
		byVisibility := w.Table[kind]
		for _, visibility := range sortedKeys(byVisibility) {
			field := "weights.table." + string(kind) + "." + string(visibility)
			if _, ok := graph.ParseVisibility(string(visibility)); !ok {
				return &Error{Field: field, Message: "unknown visibility"}
			}
			if byVisibility[visibility] < 0 {
				return &Error{Field: field, Message: "weight must not be negative"}
			}
		}
	}
	return nil
}

func (l *Limits) validate() error {
	for _, kind := range sortedKeys(l.PerKind) {
		field := "limits.per_kind." + string(kind)
		if _, ok := graph.ParseKind(string(kind)); !ok {
			return &Error{Field: field, Message: "unknown unit kind"}
		}
		if l.PerKind[kind] < 0 {
			return &Error{Field: field, Message: "threshold must not be negative"}
		}
	}
	return nil
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(namespace string) string {
	if idx := strings.IndexByte(namespace, '.'); idx != -1 {
		return namespace[idx+1:]
	}
	return namespace
}

func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "oneof":
		return fmt.Sprintf("%v is not one of [%s]", fieldErr.Value(), fieldErr.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "required":
		return "must not be empty"
	}
	return fmt.Sprintf("failed %q check", fieldErr.Tag())
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
