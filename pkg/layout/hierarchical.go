package layout

import (
	"errors"

	"github.com/sysviz/sysviz/pkg/model"
)

// errNoZones is returned when zone assignment places nothing, which happens
// for degenerate graphs (for example every element tagged as a system
// boundary). The caller falls back to force-directed layout.
var errNoZones = errors.New("no zoned nodes to position")

// hierarchicalLayout arranges a full unit into fixed zones: use cases in a
// horizontal band at ~25% height, remaining components stacked on the left
// and right edges and rowed along the bottom.
func (e *Engine) hierarchicalLayout(u Unit, sizes map[string]Size) (map[string]Point, error) {
	area := contentArea(e.canvas, hierInsetX, hierInsetY)
	if area.Width <= 0 || area.Height <= 0 {
		return nil, errors.New("canvas too small for zoned layout")
	}

	var useCases, components []string
	for _, elem := range u.Elements() {
		switch elem.Kind {
		case model.KindUseCase:
			useCases = append(useCases, elem.ID)
		case model.KindPart, model.KindActor, model.KindSubject:
			components = append(components, elem.ID)
		}
	}
	if len(useCases) == 0 && len(components) == 0 {
		return nil, errNoZones
	}

	pos := make(map[string]Point, len(useCases)+len(components))

	if len(useCases) > 0 {
		ucY := area.Y + area.Height*0.25
		placeRow(pos, useCases, sizes, area, ucY, 40, 20)
	}

	if len(components) > 0 {
		left, right, bottom := splitZones(components)

		// Left and right stacks spread over the middle 70% of the height.
		zoneH := area.Height * 0.7
		zoneY := area.Y + (area.Height-zoneH)/2
		placeColumn(pos, left, area.X+50, zoneY, zoneH)
		placeColumn(pos, right, area.Right()-50, zoneY, zoneH)

		if len(bottom) > 0 {
			bottomY := area.Y + area.Height*0.80
			placeRow(pos, bottom, sizes, area, bottomY, 30, 15)
		}
	}

	return pos, nil
}

// splitZones distributes components across the left, right, and bottom zones.
// Small sets pin one element to each vertical edge; larger sets split in
// rough thirds with the remainder along the bottom.
func splitZones(components []string) (left, right, bottom []string) {
	n := len(components)
	leftCount, rightCount := 1, 1
	if n > 3 {
		leftCount = n / 3
		rightCount = n / 3
	}

	left = components[:min(leftCount, n)]
	if n > leftCount {
		right = components[leftCount:min(leftCount+rightCount, n)]
	}
	if n > leftCount+rightCount {
		bottom = components[leftCount+rightCount:]
	}
	return left, right, bottom
}

// placeRow lays nodes left-to-right at the given y, centered as a group when
// they fit, otherwise compressed with at least minGap between boxes.
func placeRow(pos map[string]Point, ids []string, sizes map[string]Size, area Rect, y, gap, minGap float64) {
	var total float64
	for _, id := range ids {
		total += sizes[id].Width
	}
	total += float64(len(ids)-1) * gap

	spacing := gap
	x := area.X + (area.Width-total)/2
	if total > area.Width {
		// Too wide for the zone; shrink the gaps and start flush left.
		spacing = minGap
		if len(ids) > 1 {
			spacing = max(minGap, (area.Width-total+float64(len(ids)-1)*gap)/float64(len(ids)-1))
		}
		x = area.X
	}

	for _, id := range ids {
		w := sizes[id].Width
		pos[id] = Point{X: x + w/2, Y: y}
		x += w + spacing
	}
}

// placeColumn stacks nodes top-to-bottom, evenly spaced within the zone.
func placeColumn(pos map[string]Point, ids []string, x, zoneY, zoneH float64) {
	if len(ids) == 0 {
		return
	}
	spacing := zoneH / float64(len(ids)+1)
	for i, id := range ids {
		pos[id] = Point{X: x, Y: zoneY + float64(i+1)*spacing}
	}
}
