package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeGuest(t *testing.T) {
	ng, err := DecodeGuest(strings.NewReader(`{"name":"Ana","side":"noiva"}`))
	require.NoError(t, err)
	assert.Equal(t, "Ana", ng.Name)
	assert.Equal(t, "noiva", ng.Side)
}

func TestDecodeGuestIgnoresServerFields(t *testing.T) {
	ng, err := DecodeGuest(strings.NewReader(
		`{"name":"Ana","side":"noiva","id":7,"present":true,"createdAt":"2020-01-01T00:00:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, "Ana", ng.Name)
	assert.Equal(t, "noiva", ng.Side)
}

func TestDecodeGuestRejects(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"empty name", `{"name":"","side":"noiva"}`, "name"},
		{"missing side", `{"name":"Ana"}`, ""},
		{"numeric name", `{"name":5,"side":"noiva"}`, "name"},
		{"null side", `{"name":"Ana","side":null}`, "side"},
		{"array body", `[]`, ""},
		{"malformed", `{"name":`, ""},
		{"empty body", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeGuest(strings.NewReader(tt.body))
			var ve *Error
			require.True(t, errors.As(err, &ve), "got %v", err)
			require.NotEmpty(t, ve.Fields)
			if tt.field != "" {
				assert.Equal(t, tt.field, ve.Fields[0].Field)
			}
		})
	}
}

func TestDecodeLogin(t *testing.T) {
	l, err := DecodeLogin(strings.NewReader(`{"username":"casamento","password":"1995"}`))
	require.NoError(t, err)
	assert.Equal(t, Login{Username: "casamento", Password: "1995"}, l)

	for _, body := range []string{
		`{"username":"","password":"1995"}`,
		`{"username":"casamento"}`,
		`{"username":"casamento","password":1995}`,
	} {
		_, err := DecodeLogin(strings.NewReader(body))
		var ve *Error
		assert.True(t, errors.As(err, &ve), body)
	}
}

func TestDecodePresence(t *testing.T) {
	p, err := DecodePresence(strings.NewReader(`{"present":true}`))
	require.NoError(t, err)
	assert.True(t, p.Present)

	p, err = DecodePresence(strings.NewReader(`{"present":false}`))
	require.NoError(t, err)
	assert.False(t, p.Present)

	for _, body := range []string{`{}`, `{"present":"yes"}`, `{"present":1}`, `{"present":null}`} {
		_, err := DecodePresence(strings.NewReader(body))
		var ve *Error
		assert.True(t, errors.As(err, &ve), body)
	}
}

func TestErrorMessage(t *testing.T) {
	e := &Error{Fields: []FieldError{{Field: "name", Message: "too short"}, {Message: "malformed JSON"}}}
	assert.Equal(t, "validation: name: too short; malformed JSON", e.Error())
}
