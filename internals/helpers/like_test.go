package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeContains(t *testing.T) {
	assert.Equal(t, "%yilmaz%", LikeContains("  Yilmaz "))
	assert.Equal(t, `%50\%\_off\\%`, LikeContains(`50%_off\`))
}
