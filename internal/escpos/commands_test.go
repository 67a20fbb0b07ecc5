// internal/escpos/commands_test.go
package escpos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawerKick(t *testing.T) {
	payload, err := DrawerKick(DrawerPin2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1B, 0x40, 0x1B, 0x70, 0x00, 0x19, 0x19}, payload)

	payload, err = DrawerKick(DrawerPin5)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1B, 0x40, 0x1B, 0x70, 0x01, 0x19, 0x19}, payload)

	_, err = DrawerKick(3)
	assert.Error(t, err)
}

func TestDrawerKick_DoesNotAliasTable(t *testing.T) {
	payload, err := DrawerKick(DrawerPin2)
	require.NoError(t, err)
	payload[0] = 0xFF

	assert.Equal(t, []byte{0x1B, 0x40}, Commands.INITIALIZE)
}
