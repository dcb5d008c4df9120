package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntrant_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Entrant
	}{
		{"strings", `{"name":"Ada","email":"a@x.com","phone":"555"}`, Entrant{"Ada", "a@x.com", "555"}},
		{"numeric phone", `{"name":"Ada","email":"a@x.com","phone":21655501}`, Entrant{"Ada", "a@x.com", "21655501"}},
		{"true keeps text", `{"name":true,"email":"a@x.com","phone":"1"}`, Entrant{"true", "a@x.com", "1"}},
		{"falsy values are empty", `{"name":false,"email":null,"phone":0}`, Entrant{}},
		{"missing keys", `{"name":"Ada"}`, Entrant{Name: "Ada"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Entrant
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntrant_UnmarshalJSONRejectsComposites(t *testing.T) {
	for _, body := range []string{
		`{"name":{"first":"Ada"},"email":"a@x.com","phone":"1"}`,
		`{"name":"Ada","email":["a@x.com"],"phone":"1"}`,
		`["Ada","a@x.com","1"]`,
	} {
		var e Entrant
		assert.Error(t, json.Unmarshal([]byte(body), &e), body)
	}
}
