// Package validation wraps a shared struct validator whose error field names
// follow the json or yaml tag of each field.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorInstance *validator.Validate
	validatorOnce     sync.Once
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInstance = validator.New()

		validatorInstance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, key := range []string{"json", "yaml"} {
				name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})

	return validatorInstance
}

// Error lists the failed rules per field, keyed by the field's namespace.
type Error struct {
	Fields map[string][]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], ",")))
	}
	return "invalid " + strings.Join(parts, "; ")
}

// Struct validates input against its validate tags. It returns nil or an
// *Error.
func Struct(input any) error {
	err := getValidator().Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{Fields: make(map[string][]string, len(verrs))}
	for _, fe := range verrs {
		key := fe.Namespace()
		// Drop the struct name: "Config.counter.path" -> "counter.path".
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		out.Fields[key] = append(out.Fields[key], fe.Tag())
	}
	return out
}
