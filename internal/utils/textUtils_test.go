package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	first := Slugify("The Future of AI: 2024!")
	second := Slugify("The Future of AI: 2024!")
	assert.Equal(t, first, second, "slug must be deterministic")

	assert.Regexp(t, regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`), first)
	assert.Equal(t, "the-future-of-ai-2024", first)

	assert.Equal(t, "hello-world", Slugify("  Hello   World  "))
	assert.Equal(t, "a-b", Slugify("a --- b"))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 3, WordCount("one  two\nthree"))
}

func TestPrimaryKeyword(t *testing.T) {
	assert.Equal(t, "quantum", PrimaryKeyword("Quantum Computing News"))
	assert.Equal(t, "nasa", PrimaryKeyword("AI at NASA"))
	assert.Equal(t, "technology", PrimaryKeyword("an of it"))
}
