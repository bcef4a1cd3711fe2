package text

import "strings"

// Shaped is text in display order. Right-to-left runs are reordered and
// Arabic letters replaced with their contextual presentation forms, so the
// runes can be laid out strictly left to right.
type Shaped string

// Shape converts a logical-order string into display order.
//
// The string is split into directional runs with the Unicode bidirectional
// algorithm. Right-to-left runs are joined first and then reversed as a
// whole; left-to-right runs such as digits and Latin words keep their order.
// Each line is shaped independently. A string without right-to-left content
// is returned unchanged.
func Shape(s string) Shaped {
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "\n") {
		return Shaped(shapeLine(s))
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = shapeLine(line)
	}
	return Shaped(strings.Join(lines, "\n"))
}

func shapeLine(line string) string {
	runes := []rune(line)
	levels := resolveLevels(runes)
	if !hasOdd(levels) {
		return line
	}

	joined := make([]rune, 0, len(runes))
	joinedLevels := make([]uint8, 0, len(runes))
	for i := 0; i < len(runes); {
		rtl := levels[i]%2 == 1
		j := i
		for j < len(runes) && (levels[j]%2 == 1) == rtl {
			j++
		}
		if !rtl {
			joined = append(joined, runes[i:j]...)
			joinedLevels = append(joinedLevels, levels[i:j]...)
			i = j
			continue
		}
		run := joinArabic(runes[i:j])
		joined = append(joined, run...)
		for range run {
			joinedLevels = append(joinedLevels, levelRTL)
		}
		i = j
	}
	return string(visualOrder(clusters(joined, joinedLevels)))
}

// String returns the display-order text.
func (s Shaped) String() string { return string(s) }
