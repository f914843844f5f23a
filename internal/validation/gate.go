package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clients-api/internal/httperr"
)

const (
	bodyKey   = "validation.body"
	queryKey  = "validation.query"
	paramsKey = "validation.params"
)

var errBodyNotObject = errors.New("body must be a valid JSON object")

// Source is one part of a request (body, query string or path parameters)
// together with the struct it decodes into.
type Source struct {
	key    string
	target func() any
	read   func(c *gin.Context) (map[string]any, error)
}

func Body[T any]() Source {
	return Source{key: bodyKey, target: func() any { return new(T) }, read: readBody}
}

func Query[T any]() Source {
	return Source{key: queryKey, target: func() any { return new(T) }, read: readQuery}
}

func Params[T any]() Source {
	return Source{key: paramsKey, target: func() any { return new(T) }, read: readParams}
}

// Gate validates every source and answers 400 with all messages collected,
// in source order. On success the decoded values are left in the context.
func (v *Validator) Gate(sources ...Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		var msgs []string
		for _, src := range sources {
			value, errs := v.check(c, src)
			msgs = append(msgs, errs...)
			if value != nil {
				c.Set(src.key, value)
			}
		}

		if len(msgs) > 0 {
			httperr.Abort(c, http.StatusBadRequest, msgs...)
			return
		}
		c.Next()
	}
}

func BodyFrom[T any](c *gin.Context) *T {
	return from[T](c, bodyKey)
}

func QueryFrom[T any](c *gin.Context) *T {
	return from[T](c, queryKey)
}

func ParamsFrom[T any](c *gin.Context) *T {
	return from[T](c, paramsKey)
}

func from[T any](c *gin.Context, key string) *T {
	value, ok := c.Get(key)
	if !ok {
		return nil
	}
	typed, _ := value.(*T)
	return typed
}

func (v *Validator) check(c *gin.Context, src Source) (any, []string) {
	raw, err := src.read(c)
	if err != nil {
		return nil, []string{err.Error()}
	}

	target := src.target()
	fields := fieldsOf(reflect.TypeOf(target).Elem())

	typeErrs := make(map[string]string)
	for _, f := range fields {
		value, ok := raw[f.name]
		if !ok {
			continue
		}

		normalized, msg := coerce(value, f.kind)
		switch {
		case msg != "":
			typeErrs[f.name] = f.name + msg
			delete(raw, f.name)
		case normalized == nil:
			delete(raw, f.name)
		default:
			raw[f.name] = normalized
		}
	}

	encoded, err := json.Marshal(raw)
	if err == nil {
		err = json.Unmarshal(encoded, target)
	}
	if err != nil {
		return nil, []string{fmt.Sprintf("%s is not valid", strings.TrimPrefix(src.key, "validation."))}
	}

	ruleErrs, err := v.fieldErrors(target)
	if err != nil {
		return nil, []string{err.Error()}
	}

	var msgs []string
	for _, f := range fields {
		if msg, ok := typeErrs[f.name]; ok {
			msgs = append(msgs, msg)
		} else if msg, ok := ruleErrs[f.name]; ok {
			msgs = append(msgs, msg)
		}
	}
	if len(msgs) > 0 {
		return nil, msgs
	}
	return target, nil
}

type field struct {
	name string
	kind reflect.Kind
}

func fieldsOf(t reflect.Type) []field {
	var fields []field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			fields = append(fields, fieldsOf(sf.Type)...)
			continue
		}
		if !sf.IsExported() {
			continue
		}

		name := jsonName(sf)
		if name == "" {
			continue
		}

		ft := sf.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		fields = append(fields, field{name: name, kind: ft.Kind()})
	}
	return fields
}

// coerce checks a raw value against the kind of the field it is meant for.
// A nil result with an empty message means the value counts as absent.
func coerce(value any, kind reflect.Kind) (any, string) {
	if value == nil {
		return nil, ""
	}

	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var text string
		switch v := value.(type) {
		case json.Number:
			text = v.String()
		case string:
			text = strings.TrimSpace(v)
			if text == "" {
				return nil, ""
			}
		default:
			return nil, " must be an integer"
		}
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, " must be an integer"
		}
		return n, ""

	case reflect.String:
		if _, ok := value.(string); !ok {
			return nil, " must be a string"
		}
	}
	return value, ""
}

func readBody(c *gin.Context) (map[string]any, error) {
	if c.Request.Body == nil {
		return map[string]any{}, nil
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, errBodyNotObject
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return nil, errBodyNotObject
	}
	// one value only
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errBodyNotObject
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, errBodyNotObject
	}
	return obj, nil
}

func readQuery(c *gin.Context) (map[string]any, error) {
	raw := make(map[string]any)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			raw[key] = values[0]
		}
	}
	return raw, nil
}

func readParams(c *gin.Context) (map[string]any, error) {
	raw := make(map[string]any, len(c.Params))
	for _, p := range c.Params {
		raw[p.Key] = p.Value
	}
	return raw, nil
}
