package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("bad instruction 0x00000013", From("bad instruction 0x%08x", uint32(0x13)))
	assert.Equal("x5", From("x%d", 5))
}

func TestLocalesOverride(t *testing.T) {
	assert := assert.New(t)

	t.Setenv(LANG_ENV, "fr-FR")
	assert.Equal([]string{"fr-FR"}, Locales())

	t.Setenv(LANG_ENV, "")
	assert.NotEmpty(Locales())
}

func TestNewPrinter(t *testing.T) {
	assert := assert.New(t)

	p := NewPrinter()
	assert.Equal("0x2a", p.Sprintf("%#x", 42))

	p = NewPrinter("en-US")
	assert.Equal("line 3", p.Sprintf("line %d", 3))
}
