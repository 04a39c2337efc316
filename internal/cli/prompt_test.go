package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlwaysYes(t *testing.T) {
	confirm := AlwaysYes()

	result, err := confirm("anything")

	require.NoError(t, err)
	assert.True(t, result)
}

func TestConfirmForYesFlagSkipsPrompt(t *testing.T) {
	confirm := confirmFor(true)

	result, err := confirm("Cancel the auto clock-out?")

	require.NoError(t, err)
	assert.True(t, result)
}
