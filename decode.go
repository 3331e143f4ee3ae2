package fetchstate

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Decoder turns a raw response body into a payload of type T.
type Decoder[T any] func(data []byte) (T, error)

// JSONDecoder decodes data as JSON into T.
func JSONDecoder[T any](data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}

// validatePayload runs struct validation on v, or on each element if v is a slice or array of structs.
// Other kinds have no tags to check and always pass.
func validatePayload(validate *validator.Validate, v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return validate.Struct(rv.Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := validatePayload(validate, rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	}
	return nil
}
