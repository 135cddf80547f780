package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// EnvPrefix may be prepended to any env tag; CHECKMYGRADE_JWT_SECRET wins
// over JWT_SECRET when both are set.
const EnvPrefix = "CHECKMYGRADE_"

// lookupEnv returns the prefixed variable if set, else the bare one
func lookupEnv(name string) (string, bool) {
	if value, ok := os.LookupEnv(EnvPrefix + name); ok {
		return value, true
	}
	return os.LookupEnv(name)
}

// processStructFields walks nested config sections and overrides every
// field carrying an env tag whose variable is set. All bad values are
// reported together.
func processStructFields(s interface{}) error {
	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	var errs error
	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if field.Kind() == reflect.Struct {
			errs = errors.Join(errs, processStructFields(field.Addr().Interface()))
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}
		envValue, exists := lookupEnv(envTag)
		if !exists {
			continue
		}

		if err := setFieldFromEnv(field, envValue); err != nil {
			errs = errors.Join(errs, fmt.Errorf("%s: %w", envTag, err))
		}
	}

	return errs
}

// setFieldFromEnv sets a string or bool field. An empty value clears a
// string and leaves a bool untouched.
func setFieldFromEnv(field reflect.Value, value string) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(strings.TrimSpace(value))

	case reflect.Bool:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		boolValue, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		field.SetBool(boolValue)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
