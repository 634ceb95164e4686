package layout

import (
	"github.com/sysviz/sysviz/pkg/model"
)

// Shape sizing depends on kind and label length, clamped to per-kind bounds.
// Use-case ellipses are the widest shapes, actor circles the smallest.
// Focused units use fixed medium sizes so the three-shape composition always
// reads the same way regardless of label length.

// ElementSize returns the bounding box for an element in a full-unit layout.
func ElementSize(kind model.ElementKind, name string) Size {
	n := float64(len(name))
	switch kind {
	case model.KindUseCase:
		return Size{Width: clamp(n*9, 180, 280), Height: 75}
	case model.KindActor:
		d := clamp(n*7, 80, 120)
		return Size{Width: d, Height: d}
	case model.KindSubject:
		return Size{Width: clamp(n*8, 80, 150), Height: 50}
	default:
		return Size{Width: clamp(n*8, 130, 200), Height: 60}
	}
}

// FocusedElementSize returns the bounding box for an element in a focused
// relationship layout. The canvas is needed because the use-case ellipse and
// part rectangle scale with the available width on narrow canvases.
func FocusedElementSize(kind model.ElementKind, c Canvas) Size {
	area := contentArea(c, focusedInsetX, focusedInsetY)
	switch kind {
	case model.KindUseCase:
		return Size{Width: min(280, area.Width*0.45), Height: 85}
	case model.KindActor:
		return Size{Width: focusedActorSize, Height: focusedActorSize}
	default:
		return Size{Width: min(140, area.Width*0.22), Height: 60}
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
