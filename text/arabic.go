package text

// joining is how a letter connects to its neighbours.
type joining uint8

const (
	joinNone        joining = iota // U: does not join
	joinRight                      // R: joins to the preceding letter only
	joinDual                       // D: joins on both sides
	joinCausing                    // C: tatweel, ZWJ
	joinTransparent                // T: combining marks
)

// Presentation form indexes into arabicForms entries.
const (
	formIsolated = iota
	formFinal
	formInitial
	formMedial
)

// arabicForms maps a letter to its isolated, final, initial and medial
// presentation forms. Zero means the form does not exist.
var arabicForms = map[rune][4]rune{
	0x0621: {0xFE80, 0, 0, 0},
	0x0622: {0xFE81, 0xFE82, 0, 0},
	0x0623: {0xFE83, 0xFE84, 0, 0},
	0x0624: {0xFE85, 0xFE86, 0, 0},
	0x0625: {0xFE87, 0xFE88, 0, 0},
	0x0626: {0xFE89, 0xFE8A, 0xFE8B, 0xFE8C},
	0x0627: {0xFE8D, 0xFE8E, 0, 0},
	0x0628: {0xFE8F, 0xFE90, 0xFE91, 0xFE92},
	0x0629: {0xFE93, 0xFE94, 0, 0},
	0x062A: {0xFE95, 0xFE96, 0xFE97, 0xFE98},
	0x062B: {0xFE99, 0xFE9A, 0xFE9B, 0xFE9C},
	0x062C: {0xFE9D, 0xFE9E, 0xFE9F, 0xFEA0},
	0x062D: {0xFEA1, 0xFEA2, 0xFEA3, 0xFEA4},
	0x062E: {0xFEA5, 0xFEA6, 0xFEA7, 0xFEA8},
	0x062F: {0xFEA9, 0xFEAA, 0, 0},
	0x0630: {0xFEAB, 0xFEAC, 0, 0},
	0x0631: {0xFEAD, 0xFEAE, 0, 0},
	0x0632: {0xFEAF, 0xFEB0, 0, 0},
	0x0633: {0xFEB1, 0xFEB2, 0xFEB3, 0xFEB4},
	0x0634: {0xFEB5, 0xFEB6, 0xFEB7, 0xFEB8},
	0x0635: {0xFEB9, 0xFEBA, 0xFEBB, 0xFEBC},
	0x0636: {0xFEBD, 0xFEBE, 0xFEBF, 0xFEC0},
	0x0637: {0xFEC1, 0xFEC2, 0xFEC3, 0xFEC4},
	0x0638: {0xFEC5, 0xFEC6, 0xFEC7, 0xFEC8},
	0x0639: {0xFEC9, 0xFECA, 0xFECB, 0xFECC},
	0x063A: {0xFECD, 0xFECE, 0xFECF, 0xFED0},
	0x0641: {0xFED1, 0xFED2, 0xFED3, 0xFED4},
	0x0642: {0xFED5, 0xFED6, 0xFED7, 0xFED8},
	0x0643: {0xFED9, 0xFEDA, 0xFEDB, 0xFEDC},
	0x0644: {0xFEDD, 0xFEDE, 0xFEDF, 0xFEE0},
	0x0645: {0xFEE1, 0xFEE2, 0xFEE3, 0xFEE4},
	0x0646: {0xFEE5, 0xFEE6, 0xFEE7, 0xFEE8},
	0x0647: {0xFEE9, 0xFEEA, 0xFEEB, 0xFEEC},
	0x0648: {0xFEED, 0xFEEE, 0, 0},
	0x0649: {0xFEEF, 0xFEF0, 0, 0},
	0x064A: {0xFEF1, 0xFEF2, 0xFEF3, 0xFEF4},
	0x0671: {0xFB50, 0xFB51, 0, 0},
	0x067E: {0xFB56, 0xFB57, 0xFB58, 0xFB59},
	0x0686: {0xFB7A, 0xFB7B, 0xFB7C, 0xFB7D},
	0x0698: {0xFB8A, 0xFB8B, 0, 0},
	0x06A4: {0xFB6A, 0xFB6B, 0xFB6C, 0xFB6D},
	0x06A9: {0xFB8E, 0xFB8F, 0xFB90, 0xFB91},
	0x06AF: {0xFB92, 0xFB93, 0xFB94, 0xFB95},
	0x06CC: {0xFBFC, 0xFBFD, 0xFBFE, 0xFBFF},
}

// lamAlef maps the alef following a lam to the isolated and final ligature.
var lamAlef = map[rune][2]rune{
	0x0622: {0xFEF5, 0xFEF6},
	0x0623: {0xFEF7, 0xFEF8},
	0x0625: {0xFEF9, 0xFEFA},
	0x0627: {0xFEFB, 0xFEFC},
}

const (
	lam     = 0x0644
	tatweel = 0x0640
	zwj     = 0x200D
)

func joiningOf(r rune) joining {
	switch {
	case r == tatweel || r == zwj:
		return joinCausing
	case isMark(r):
		return joinTransparent
	}
	f, ok := arabicForms[r]
	if !ok || f[formFinal] == 0 {
		return joinNone
	}
	if f[formInitial] == 0 {
		return joinRight
	}
	return joinDual
}

func joinsLeft(j joining) bool  { return j == joinDual || j == joinCausing }
func joinsRight(j joining) bool { return j == joinDual || j == joinRight || j == joinCausing }

// joinArabic replaces Arabic letters in logical-order runes with their
// contextual presentation forms and forms lam-alef ligatures. Marks stay
// attached to the letter they follow.
func joinArabic(runes []rune) []rune {
	types := make([]joining, len(runes))
	for i, r := range runes {
		types[i] = joiningOf(r)
	}
	// neighbour returns the index of the nearest non-transparent rune in
	// direction step, or -1.
	neighbour := func(i, step int) int {
		for j := i + step; j >= 0 && j < len(runes); j += step {
			if types[j] != joinTransparent {
				return j
			}
		}
		return -1
	}

	out := make([]rune, 0, len(runes))
	skipTo := -1
	for i, r := range runes {
		if i <= skipTo {
			continue
		}
		t := types[i]
		if t != joinRight && t != joinDual {
			out = append(out, r)
			continue
		}
		prev, next := neighbour(i, -1), neighbour(i, 1)
		joinPrev := prev >= 0 && joinsLeft(types[prev])

		if r == lam && next >= 0 {
			if lig, ok := lamAlef[runes[next]]; ok {
				if joinPrev {
					out = append(out, lig[1])
				} else {
					out = append(out, lig[0])
				}
				// Marks between lam and alef follow the ligature.
				out = append(out, runes[i+1:next]...)
				skipTo = next
				continue
			}
		}

		joinNext := joinsLeft(t) && next >= 0 && joinsRight(types[next])
		forms := arabicForms[r]
		form := formIsolated
		switch {
		case joinPrev && joinNext:
			form = formMedial
		case joinPrev:
			form = formFinal
		case joinNext:
			form = formInitial
		}
		out = append(out, forms[form])
	}
	return out
}
