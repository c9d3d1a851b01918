package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		raw   string
		want  string
		valid bool
	}{
		{"+79990001122", "+79990001122", true},
		{"+7 999 000-11-22", "+79990001122", true},
		{"8 (999) 000-11-22", "+79990001122", true},
		{"89990001122", "+79990001122", true},
		{"79990001122", "+79990001122", true},
		{"+12025550123", "+12025550123", true},
		{"", "", false},
		{"garbage", "+garbage", false},
		{"+123", "+123", false},
		{"+7999000112233445566", "+7999000112233445566", false},
	}

	for _, tc := range cases {
		got, ok := NormalizePhone(tc.raw)
		assert.Equal(t, tc.valid, ok, "raw=%q", tc.raw)
		if tc.valid {
			assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
		}
	}
}
