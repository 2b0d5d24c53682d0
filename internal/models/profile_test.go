package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSkills(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"whitespace trimmed", "a, b ,c", []string{"a", "b", "c"}},
		{"order preserved", "Go, React, SQL", []string{"Go", "React", "SQL"}},
		{"empty segments dropped", "a,,b,  ,c", []string{"a", "b", "c"}},
		{"single", "Go", []string{"Go"}},
		{"empty input", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSkills(tt.in))
		})
	}
}
