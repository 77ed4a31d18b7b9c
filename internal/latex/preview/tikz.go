package preview

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// Only the simplest node/edge declarations are recognized; everything else
// in a tikzpicture falls back to a labeled placeholder.
var (
	tikzNodePattern = regexp.MustCompile(`\\node\s*(?:\[[^\]]*\])?\s*\(([^)]+)\)\s*at\s*\(\s*(-?[\d.]+)\s*,\s*(-?[\d.]+)\s*\)\s*\{([^}]*)\}\s*;`)
	tikzEdgePattern = regexp.MustCompile(`\\draw\s*(?:\[[^\]]*\])?\s*\(([^)]+)\)\s*--\s*\(([^)]+)\)\s*;`)
)

type tikzNode struct {
	x, y  float64
	label string
}

// renderTikz converts simple \node/\draw declarations into an inline SVG
// diagram. Pictures with no recognizable declarations become a placeholder.
func renderTikz(body string) string {
	nodes := map[string]tikzNode{}
	var order []string
	for _, m := range tikzNodePattern.FindAllStringSubmatch(body, -1) {
		x, errX := strconv.ParseFloat(m[2], 64)
		y, errY := strconv.ParseFloat(m[3], 64)
		if errX != nil || errY != nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		nodes[name] = tikzNode{x: x, y: y, label: strings.TrimSpace(m[4])}
		order = append(order, name)
	}
	if len(nodes) == 0 {
		return `<div class="latex-placeholder">TikZ diagram</div>` + "\n"
	}

	const scale, pad = 60.0, 40.0
	minX, minY, maxX, maxY := bounds(nodes)
	width := (maxX-minX)*scale + 2*pad
	height := (maxY-minY)*scale + 2*pad
	px := func(n tikzNode) (float64, float64) {
		return (n.x-minX)*scale + pad, (maxY-n.y)*scale + pad
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg class="tikz-diagram" viewBox="0 0 %.0f %.0f" xmlns="http://www.w3.org/2000/svg">`, width, height)
	b.WriteString("\n")

	for _, m := range tikzEdgePattern.FindAllStringSubmatch(body, -1) {
		from, okFrom := nodes[strings.TrimSpace(m[1])]
		to, okTo := nodes[strings.TrimSpace(m[2])]
		if !okFrom || !okTo {
			continue
		}
		x1, y1 := px(from)
		x2, y2 := px(to)
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="currentColor"/>`, x1, y1, x2, y2)
		b.WriteString("\n")
	}

	for _, name := range order {
		n := nodes[name]
		x, y := px(n)
		fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="18" fill="white" stroke="currentColor"/>`, x, y)
		b.WriteString("\n")
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`, x, y, html.EscapeString(n.label))
		b.WriteString("\n")
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func bounds(nodes map[string]tikzNode) (minX, minY, maxX, maxY float64) {
	first := true
	for _, n := range nodes {
		if first {
			minX, maxX, minY, maxY = n.x, n.x, n.y, n.y
			first = false
			continue
		}
		if n.x < minX {
			minX = n.x
		}
		if n.x > maxX {
			maxX = n.x
		}
		if n.y < minY {
			minY = n.y
		}
		if n.y > maxY {
			maxY = n.y
		}
	}
	return minX, minY, maxX, maxY
}
