package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("line 3", From("line %d", 3))
	assert.Equal("no arguments", From("no arguments"))
}

func TestLanguage(t *testing.T) {
	assert := assert.New(t)

	tag := Language()
	assert.NotEqual("", tag.String())
}
