package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"+254712345678", true},
		{"254712345678", true},
		{"0712345678", true},
		{"0112345678", true},
		{"+25471234567", false},
		{"+2547123456789", false},
		{"07123456789", false},
		{"712345678", false},
		{"", false},
		{"+254", false},
		{"+2540712345678", false},
		{"0abcdefghi", true}, // textual check only
	}
	for _, tc := range cases {
		t.Run(tc.phone, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidatePhone(tc.phone))
		})
	}
}
