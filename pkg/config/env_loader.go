/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/carverauto/qualitysync/pkg/logger"
	"github.com/carverauto/qualitysync/pkg/models"
)

var (
	// ErrDstMustBeNonNilPointer indicates that the destination must be a non-nil pointer.
	ErrDstMustBeNonNilPointer = errors.New("dst must be a non-nil pointer")
	// ErrDstMustBePointerToStruct indicates that the destination must be a pointer to a struct.
	ErrDstMustBePointerToStruct = errors.New("dst must be a pointer to a struct")

	errInvalidEnvValue = errors.New("invalid environment value")
)

const configJSONVar = "CONFIG_JSON"

var (
	durationType       = reflect.TypeOf(time.Duration(0))
	modelsDurationType = reflect.TypeOf(models.Duration(0))
)

// EnvConfigLoader fills a config struct from environment variables named
// after the json tags of its fields: with prefix QUALITYSYNC_, the field
// tagged "cnpg" and its nested "host" is read from QUALITYSYNC_CNPG_HOST.
// A complete JSON document in <prefix>CONFIG_JSON takes precedence.
type EnvConfigLoader struct {
	logger logger.Logger
	prefix string
}

// NewEnvConfigLoader creates a new environment variable config loader.
func NewEnvConfigLoader(log logger.Logger, prefix string) *EnvConfigLoader {
	return &EnvConfigLoader{
		logger: log,
		prefix: prefix,
	}
}

// Load implements ConfigLoader. Every variable that is set but cannot be
// decoded is reported; the rest are still applied.
func (e *EnvConfigLoader) Load(_ context.Context, _ string, dst interface{}) error {
	if raw := os.Getenv(e.prefix + configJSONVar); raw != "" {
		if err := json.Unmarshal([]byte(raw), dst); err != nil {
			return fmt.Errorf("failed to unmarshal %s%s: %w", e.prefix, configJSONVar, err)
		}

		e.debug().Str("env", e.prefix+configJSONVar).Msg("Loaded configuration document from environment")

		return nil
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrDstMustBeNonNilPointer
	}

	if v.Elem().Kind() != reflect.Struct {
		return ErrDstMustBePointerToStruct
	}

	set := make(map[string]string)

	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if ok && value != "" && strings.HasPrefix(name, e.prefix) {
			set[name] = value
		}
	}

	applied, err := e.fill(v.Elem(), e.prefix, set)

	e.debug().Int("applied", applied).Str("prefix", e.prefix).Msg("Loaded configuration from environment")

	return err
}

func (e *EnvConfigLoader) debug() *zerolog.Event {
	if e.logger == nil {
		return nil
	}

	return e.logger.Debug()
}

// fill walks the tagged fields of v and returns how many were set.
func (e *EnvConfigLoader) fill(v reflect.Value, prefix string, set map[string]string) (int, error) {
	var (
		applied int
		errs    []error
	)

	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		name, ok := envFieldName(t.Field(i))

		if !ok || !field.CanSet() {
			continue
		}

		env := prefix + name

		if raw, ok := set[env]; ok {
			if err := decodeEnvValue(field, raw); err != nil {
				errs = append(errs, fmt.Errorf("%w %s: %w", errInvalidEnvValue, env, err))
				continue
			}

			applied++

			continue
		}

		nested, ok := structTarget(field)
		if !ok || !hasPrefix(set, env+"_") {
			continue
		}

		if field.Kind() == reflect.Ptr && field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
			nested = field.Elem()
		}

		n, err := e.fill(nested, env+"_", set)
		applied += n

		if err != nil {
			errs = append(errs, err)
		}
	}

	return applied, errors.Join(errs...)
}

func envFieldName(f reflect.StructField) (string, bool) {
	tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if tag == "" || tag == "-" {
		return "", false
	}

	return strings.ToUpper(strings.ReplaceAll(tag, ".", "_")), true
}

// structTarget returns the struct a field holds or points to. The returned
// value is invalid for a nil pointer.
func structTarget(field reflect.Value) (reflect.Value, bool) {
	switch {
	case field.Kind() == reflect.Struct:
		return field, true
	case field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct:
		if field.IsNil() {
			return reflect.Value{}, true
		}

		return field.Elem(), true
	default:
		return reflect.Value{}, false
	}
}

func hasPrefix(set map[string]string, prefix string) bool {
	for name := range set {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}

	return false
}

// decodeEnvValue sets field from raw. Durations use time.ParseDuration,
// string slices are comma separated, and anything else that is not a
// scalar is decoded as JSON.
func decodeEnvValue(field reflect.Value, raw string) error {
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}

		return decodeEnvValue(field.Elem(), raw)
	}

	if field.Type() == durationType || field.Type() == modelsDurationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}

		field.SetInt(int64(d))

		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}

		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}

		field.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}

		field.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return err
		}

		field.SetFloat(f)
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String && !strings.HasPrefix(strings.TrimSpace(raw), "[") {
			parts := strings.Split(raw, ",")
			out := reflect.MakeSlice(field.Type(), len(parts), len(parts))

			for i, p := range parts {
				out.Index(i).SetString(strings.TrimSpace(p))
			}

			field.Set(out)

			return nil
		}

		return json.Unmarshal([]byte(raw), field.Addr().Interface())
	default:
		return json.Unmarshal([]byte(raw), field.Addr().Interface())
	}

	return nil
}
