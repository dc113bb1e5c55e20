package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Ryzen 7 7800X3D (Box)": "ryzen-7-7800x3d-box",
		"  GeForce RTX_4070  ":  "geforce-rtx-4070",
		"Čtečka karet":          "ctecka-karet",
		"already-a-slug":        "already-a-slug",
		"!!!":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}
