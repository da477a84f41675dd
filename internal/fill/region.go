package fill

import (
	"github.com/ironsheep/image-fill-mcp/internal/imaging"
)

// SelectRegion narrows an alpha band mask by the target mode:
//
//   - TargetAll: the band itself
//   - TargetSpecific: band ∩ matched
//   - TargetNonSpecific: band ∩ ¬matched
//
// matched is ignored for TargetAll and may be nil there; for the other modes
// a nil matched counts as "nothing matched". The result is always a fresh mask.
func SelectRegion(band *imaging.Mask, mode TargetMode, matched *imaging.Mask) *imaging.Mask {
	if matched == nil {
		matched = imaging.NewMask(band.Width, band.Height)
	}
	switch mode {
	case TargetSpecific:
		return band.Intersect(matched)
	case TargetNonSpecific:
		return band.Subtract(matched)
	default:
		return band.Clone()
	}
}
