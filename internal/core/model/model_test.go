package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceName(t *testing.T) {
	assert.Equal(t, "Broken Hill", PlaceName("Broken Hill, New South Wales, Australia"))
	assert.Equal(t, "Uluru", PlaceName("  Uluru "))
	assert.Equal(t, "", PlaceName(""))
}

func TestEmptyCategory(t *testing.T) {
	c := EmptyCategory("music", "Birdsville")

	assert.False(t, c.HasResults)
	assert.Equal(t, "No local music results found for Birdsville — explore nearby regions instead.", c.Summary)
	assert.NotNil(t, c.Items)
	assert.Empty(t, c.Items)
}
