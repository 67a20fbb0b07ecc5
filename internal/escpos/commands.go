// internal/escpos/commands.go
package escpos

import "fmt"

// Commands contains the ESC/POS sequences the print bridge emits itself.
// Receipt payloads arrive pre-formatted and are never built here.
var Commands = struct {
	INITIALIZE []byte

	// Cash drawer
	DRAWER_KICK_PIN2 []byte // Pin 2 (most common)
	DRAWER_KICK_PIN5 []byte // Pin 5
}{
	INITIALIZE: []byte{0x1B, 0x40}, // ESC @

	DRAWER_KICK_PIN2: []byte{0x1B, 0x70, 0x00, 0x19, 0x19}, // ESC p 0 25 25
	DRAWER_KICK_PIN5: []byte{0x1B, 0x70, 0x01, 0x19, 0x19}, // ESC p 1 25 25
}

// DrawerPin selects the drawer kick connector pin
type DrawerPin int

const (
	DrawerPin2 DrawerPin = 2
	DrawerPin5 DrawerPin = 5
)

// DrawerKick returns init followed by the kick pulse for pin
func DrawerKick(pin DrawerPin) ([]byte, error) {
	var kick []byte
	switch pin {
	case DrawerPin2:
		kick = Commands.DRAWER_KICK_PIN2
	case DrawerPin5:
		kick = Commands.DRAWER_KICK_PIN5
	default:
		return nil, fmt.Errorf("unsupported drawer pin: %d", pin)
	}

	payload := make([]byte, 0, len(Commands.INITIALIZE)+len(kick))
	payload = append(payload, Commands.INITIALIZE...)
	return append(payload, kick...), nil
}
