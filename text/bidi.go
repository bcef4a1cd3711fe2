package text

import (
	"unicode"

	"golang.org/x/text/unicode/bidi"
)

// Embedding levels used by the resolver. Deeper explicit embeddings are not
// produced by label text.
const (
	levelLTR    uint8 = 0
	levelRTL    uint8 = 1
	levelNumber uint8 = 2
)

// paragraphLevel returns the base level of runes: the direction of the first
// strong character, left-to-right when there is none.
func paragraphLevel(classes []bidi.Class) uint8 {
	for _, c := range classes {
		switch c {
		case bidi.L:
			return levelLTR
		case bidi.R, bidi.AL:
			return levelRTL
		}
	}
	return levelLTR
}

func classesOf(runes []rune) []bidi.Class {
	classes := make([]bidi.Class, len(runes))
	for i, r := range runes {
		p, _ := bidi.LookupRune(r)
		classes[i] = p.Class()
	}
	return classes
}

// resolveLevels returns the embedding level of every rune.
//
// The run directions come from bidi.Paragraph. Ordering only reports the
// parity of each run, so numbers that the algorithm raises to level 2 are
// restored here: European digits not governed by a preceding L, Arabic
// digits, and separators and terminators attached to them.
func resolveLevels(runes []rune) []uint8 {
	levels := make([]uint8, len(runes))
	if len(runes) == 0 {
		return levels
	}
	classes := classesOf(runes)
	base := paragraphLevel(classes)

	p := bidi.Paragraph{}
	if _, err := p.SetString(string(runes)); err != nil {
		fill(levels, base)
		return levels
	}
	ordering, err := p.Order()
	if err != nil {
		fill(levels, base)
		return levels
	}

	// run.Pos() returns rune indices, end inclusive.
	odd := make([]bool, len(runes))
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos()
		rtl := run.Direction() == bidi.RightToLeft
		for j := start; j <= end && j < len(odd); j++ {
			odd[j] = rtl
		}
	}

	numeric := numericSpans(classes)
	for i := range levels {
		switch {
		case odd[i]:
			levels[i] = levelRTL
		case base == levelRTL || numeric[i]:
			levels[i] = levelNumber
		default:
			levels[i] = levelLTR
		}
	}
	return levels
}

// numericSpans marks runes that resolve to numbers in a right-to-left
// context: AN, EN following R or AL, and the CS, ES and ET runes that the
// weak rules attach to them.
func numericSpans(classes []bidi.Class) []bool {
	num := make([]bool, len(classes))
	strong := bidi.L
	for i, c := range classes {
		switch c {
		case bidi.L, bidi.R, bidi.AL:
			strong = c
		case bidi.AN:
			num[i] = true
		case bidi.EN:
			num[i] = strong != bidi.L
		}
	}
	// A single separator between two numbers of the same kind.
	for i := 1; i+1 < len(classes); i++ {
		if (classes[i] == bidi.CS || classes[i] == bidi.ES) && num[i-1] && num[i+1] {
			num[i] = true
		}
	}
	// Terminators adjacent to European digits.
	for i, c := range classes {
		if c != bidi.ET || num[i] {
			continue
		}
		j := i
		for j < len(classes) && classes[j] == bidi.ET {
			j++
		}
		k := i - 1
		if (j < len(classes) && classes[j] == bidi.EN && num[j]) || (k >= 0 && classes[k] == bidi.EN && num[k]) {
			for m := i; m < j; m++ {
				num[m] = true
			}
		}
	}
	return num
}

func fill(levels []uint8, v uint8) {
	for i := range levels {
		levels[i] = v
	}
}

func hasOdd(levels []uint8) bool {
	for _, l := range levels {
		if l%2 == 1 {
			return true
		}
	}
	return false
}

// cluster is a base rune and the combining marks that follow it.
type cluster struct {
	runes []rune
	level uint8
}

func clusters(runes []rune, levels []uint8) []cluster {
	var out []cluster
	for i, r := range runes {
		if len(out) > 0 && isMark(r) {
			out[len(out)-1].runes = append(out[len(out)-1].runes, r)
			continue
		}
		out = append(out, cluster{runes: []rune{r}, level: levels[i]})
	}
	return out
}

func isMark(r rune) bool {
	return unicode.In(r, unicode.Mn, unicode.Me)
}

// visualOrder reorders clusters by rule L2: from the highest level down to
// the lowest odd level, every maximal sequence at that level or higher is
// reversed. Brackets at odd levels are mirrored.
func visualOrder(cs []cluster) []rune {
	var hi, lo uint8 = 0, 255
	for _, c := range cs {
		if c.level > hi {
			hi = c.level
		}
		if c.level%2 == 1 && c.level < lo {
			lo = c.level
		}
	}
	for lvl := hi; lvl >= lo && lvl > 0; lvl-- {
		for i := 0; i < len(cs); {
			if cs[i].level < lvl {
				i++
				continue
			}
			j := i
			for j < len(cs) && cs[j].level >= lvl {
				j++
			}
			for a, b := i, j-1; a < b; a, b = a+1, b-1 {
				cs[a], cs[b] = cs[b], cs[a]
			}
			i = j
		}
	}

	out := make([]rune, 0, len(cs))
	for _, c := range cs {
		if c.level%2 == 1 {
			out = append(out, mirror(c.runes[0]))
			out = append(out, c.runes[1:]...)
			continue
		}
		out = append(out, c.runes...)
	}
	return out
}

func mirror(r rune) rune {
	p, _ := bidi.LookupRune(r)
	if !p.IsBracket() {
		return r
	}
	// ReverseString swaps a bracket for its counterpart.
	m := []rune(bidi.ReverseString(string(r)))
	if len(m) != 1 {
		return r
	}
	return m[0]
}
