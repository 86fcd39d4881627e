// Package validation checks incoming JSON payloads against compiled JSON
// Schemas before they are decoded into typed requests. Fields a schema does
// not name are dropped during decoding, so clients cannot set server-assigned
// values such as id or createdAt.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"guest-list-api/internal/model"
)

const maxBody = 1 << 20

const guestSchema = `{
	"type": "object",
	"required": ["name", "side"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"side": {"type": "string", "minLength": 1}
	}
}`

const loginSchema = `{
	"type": "object",
	"required": ["username", "password"],
	"properties": {
		"username": {"type": "string", "minLength": 1},
		"password": {"type": "string", "minLength": 1}
	}
}`

const presenceSchema = `{
	"type": "object",
	"required": ["present"],
	"properties": {
		"present": {"type": "boolean"}
	}
}`

var (
	guestValidator    = mustCompile("guest.json", guestSchema)
	loginValidator    = mustCompile("login.json", loginSchema)
	presenceValidator = mustCompile("presence.json", presenceSchema)
)

type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Presence struct {
	Present bool `json:"present"`
}

// FieldError is one failed schema constraint. Field is empty when the
// failure is about the payload as a whole.
type FieldError struct {
	Field   string
	Message string
}

// Error is returned for any payload that is not valid JSON or does not match
// its schema.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation: " + strings.Join(parts, "; ")
}

func DecodeGuest(r io.Reader) (model.NewGuest, error) {
	var ng model.NewGuest
	err := decode(r, guestValidator, &ng)
	return ng, err
}

func DecodeLogin(r io.Reader) (Login, error) {
	var l Login
	err := decode(r, loginValidator, &l)
	return l, err
}

func DecodePresence(r io.Reader) (Presence, error) {
	var p Presence
	err := decode(r, presenceValidator, &p)
	return p, err
}

func decode(r io.Reader, schema *jsonschema.Schema, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r, maxBody))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return &Error{Fields: []FieldError{{Message: "malformed JSON"}}}
	}

	if err := schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return &Error{Fields: []FieldError{{Message: err.Error()}}}
		}
		out := &Error{}
		collect(ve, out)
		return out
	}

	return json.Unmarshal(body, dst)
}

// collect flattens the leaves of a schema error tree.
func collect(ve *jsonschema.ValidationError, out *Error) {
	if len(ve.Causes) == 0 {
		out.Fields = append(out.Fields, FieldError{
			Field:   strings.TrimPrefix(ve.InstanceLocation, "/"),
			Message: ve.Message,
		})
		return
	}
	for _, c := range ve.Causes {
		collect(c, out)
	}
}

func mustCompile(name, src string) *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(name, strings.NewReader(src)); err != nil {
		panic(fmt.Sprintf("validation: add %s: %v", name, err))
	}
	s, err := c.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("validation: compile %s: %v", name, err))
	}
	return s
}
