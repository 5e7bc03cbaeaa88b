package receipt

import "math"

// Canvas geometry, in pixels.
const (
	Width        = 700
	Padding      = 40
	ContentWidth = Width - 2*Padding
	BaseFontSize = 24
	LineHeight   = BaseFontSize * 1.6

	// values wider than this are truncated with an ellipsis
	ValueMaxWidth = ContentWidth - 150

	headerBrandGap = 20
	headerTypeGap  = 30
	headerDateGap  = 30
	headerTailGap  = 40
	headerHeight   = headerBrandGap + headerTypeGap + LineHeight + headerDateGap + headerTailGap

	dividerGap   = 20
	totalGap     = 40
	totalSpacer  = 60
	totalHeight  = dividerGap + totalGap + totalSpacer
	slipLabelGap = 30
	footerHeight = 40

	// MaxSlipHeight bounds the slip box; narrower slips are centred in it.
	MaxSlipHeight = 4 * ContentWidth
)

// Layout is the vertical plan of one receipt. Heights are the space the
// renderer actually advances through, so the canvas never clips.
type Layout struct {
	Items      int
	SlipWidth  int
	SlipHeight int
}

func NewLayout(items, slipWidth, slipHeight int) Layout {
	return Layout{Items: max(items, 0), SlipWidth: slipWidth, SlipHeight: slipHeight}
}

func (l Layout) HasSlip() bool {
	return l.SlipWidth > 0 && l.SlipHeight > 0
}

// SlipRenderHeight is the slip height once scaled to the content width,
// capped at MaxSlipHeight.
func (l Layout) SlipRenderHeight() float64 {
	if !l.HasSlip() {
		return 0
	}
	return min(float64(l.SlipHeight)/float64(l.SlipWidth)*ContentWidth, MaxSlipHeight)
}

// SlipRenderWidth is ContentWidth unless the height cap shrank the slip.
func (l Layout) SlipRenderWidth() float64 {
	if !l.HasSlip() {
		return 0
	}
	w := l.SlipRenderHeight() * float64(l.SlipWidth) / float64(l.SlipHeight)
	return math.Max(math.Min(w, ContentWidth), 1)
}

func (l Layout) slipBlock() float64 {
	if !l.HasSlip() {
		return 0
	}
	return slipLabelGap + l.SlipRenderHeight() + Padding
}

// Height is the total canvas height.
func (l Layout) Height() int {
	h := Padding +
		headerHeight +
		LineHeight*float64(l.Items) +
		totalHeight +
		l.slipBlock() +
		footerHeight +
		Padding
	return int(math.Ceil(h))
}
