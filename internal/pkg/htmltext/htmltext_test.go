package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	assert.Equal(t, "hello world", Extract("<p>hello <b>world</b></p>"))
	assert.Equal(t, "plain", Extract("plain"))
	assert.Equal(t, "", Extract("<div><p></p><br></div>"))
	assert.Equal(t, "a b", Extract("a <img src='x.png'> b"))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("<p></p>"))
	assert.True(t, IsEmpty("<div><span>  </span></div>"))
	assert.False(t, IsEmpty("<p>x</p>"))
}
