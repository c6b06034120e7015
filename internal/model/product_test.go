package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProduct_IsNew(t *testing.T) {
	assert.True(t, (&Product{}).IsNew())
	assert.False(t, (&Product{ID: "abc"}).IsNew())
}
