package splash

import "github.com/kytart/godrm/pkg/mode"

// findCRTC returns a free CRTC reachable through one of the connector's
// encoders, claiming it in the shared taken bitmask (one bit per CRTC
// index in res.Crtcs). Allocation is first-fit and monotonic: a claimed
// CRTC is never handed back, even if a later output could have used it
// better, so callers must resolve outputs in enumeration order.
func findCRTC(dev Device, res *mode.Resources, conn *mode.Connector, taken *uint32) (uint32, bool) {
	for _, encID := range conn.Encoders {
		enc, err := dev.Encoder(encID)
		if err != nil {
			continue
		}

		for i, crtcID := range res.Crtcs {
			bit := uint32(1) << uint(i)

			// Not compatible
			if enc.PossibleCrtcs&bit == 0 {
				continue
			}

			// Already taken
			if *taken&bit != 0 {
				continue
			}

			*taken |= bit
			return crtcID, true
		}
	}

	return 0, false
}
