package card

import (
	"fmt"

	"github.com/kytart/godrm/pkg/mode"
)

// Connector type values from the kernel's drm_mode.h, with the names
// libdrm uses for them.
var connectorTypeNames = []string{
	"Unknown",
	"VGA",
	"DVI-I",
	"DVI-D",
	"DVI-A",
	"Composite",
	"SVIDEO",
	"LVDS",
	"Component",
	"DIN",
	"DP",
	"HDMI-A",
	"HDMI-B",
	"TV",
	"eDP",
	"Virtual",
	"DSI",
	"DPI",
	"Writeback",
	"SPI",
	"USB",
}

// ConnectorTypeName returns the libdrm name for a connector type.
func ConnectorTypeName(t uint32) string {
	if int(t) < len(connectorTypeNames) {
		return connectorTypeNames[t]
	}
	return "Unknown"
}

// ConnectorName returns the human-readable port name, such as
// "HDMI-A-1" or "eDP-1".
func ConnectorName(conn *mode.Connector) string {
	return fmt.Sprintf("%s-%d", ConnectorTypeName(conn.Type), conn.TypeID)
}
