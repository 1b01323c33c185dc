package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetVerbose_TogglesEnabled(t *testing.T) {
	SetVerbose(false)
	defer SetVerbose(false)

	assert.False(t, verboseMode)
	SetVerbose(true)
	assert.True(t, Enabled())
}

func TestSetQuiet_TogglesIsQuiet(t *testing.T) {
	SetQuiet(false)
	defer SetQuiet(false)

	assert.False(t, IsQuiet())
	SetQuiet(true)
	assert.True(t, IsQuiet())
}
