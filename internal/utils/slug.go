package utils

import (
	"math/rand"

	"github.com/gosimple/slug"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewSlug derives a URL identifier from a title. The random suffix keeps
// slugs unique across articles with the same title; collisions are not
// checked.
func NewSlug(title string) string {
	return slug.Make(title) + "-" + randomSuffix(6)
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return string(b)
}
