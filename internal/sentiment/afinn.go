package sentiment

// englishLexicon is a compact AFINN-style word list, scores in [-5, 5].
var englishLexicon = map[string]float64{
	"abandon":    -2,
	"abuse":      -3,
	"accept":     1,
	"admire":     3,
	"adore":      3,
	"afraid":     -2,
	"agree":      1,
	"amazing":    4,
	"angry":      -3,
	"annoy":      -2,
	"anxious":    -2,
	"appreciate": 2,
	"awesome":    4,
	"awful":      -3,
	"bad":        -3,
	"beautiful":  3,
	"best":       3,
	"better":     2,
	"blame":      -2,
	"bore":       -2,
	"brilliant":  4,
	"broken":     -1,
	"calm":       2,
	"care":       2,
	"celebrate":  3,
	"charm":      3,
	"cheer":      2,
	"clean":      2,
	"comfort":    2,
	"complain":   -2,
	"confuse":    -2,
	"cool":       1,
	"crap":       -3,
	"cruel":      -3,
	"cry":        -1,
	"damage":     -3,
	"danger":     -2,
	"dead":       -3,
	"delight":    3,
	"depress":    -2,
	"destroy":    -3,
	"disappoint": -2,
	"disaster":   -2,
	"dislike":    -2,
	"dull":       -2,
	"eager":      2,
	"easy":       1,
	"effective":  2,
	"enjoy":      2,
	"excellent":  3,
	"excite":     3,
	"fail":       -2,
	"fair":       2,
	"fake":       -3,
	"fantastic":  4,
	"fear":       -2,
	"fine":       2,
	"fun":        4,
	"glad":       3,
	"good":       3,
	"great":      3,
	"happy":      3,
	"harm":       -2,
	"hate":       -3,
	"help":       2,
	"helpful":    2,
	"hope":       2,
	"horrible":   -3,
	"hurt":       -2,
	"ideal":      2,
	"impress":    3,
	"improve":    2,
	"interest":   2,
	"joy":        3,
	"kind":       2,
	"lame":       -2,
	"laugh":      1,
	"lose":       -3,
	"love":       3,
	"lucky":      3,
	"mess":       -2,
	"miss":       -2,
	"nice":       3,
	"pain":       -2,
	"perfect":    3,
	"pleasant":   3,
	"please":     1,
	"poor":       -2,
	"positive":   2,
	"praise":     3,
	"pretty":     1,
	"problem":    -2,
	"proud":      2,
	"recommend":  2,
	"regret":     -2,
	"reject":     -1,
	"relax":      2,
	"rude":       -2,
	"sad":        -2,
	"safe":       1,
	"satisfy":    2,
	"scare":      -2,
	"smile":      2,
	"sorry":      -1,
	"stupid":     -2,
	"success":    2,
	"suck":       -3,
	"super":      3,
	"support":    2,
	"terrible":   -3,
	"thank":      2,
	"threat":     -2,
	"tired":      -2,
	"trouble":    -2,
	"trust":      1,
	"ugly":       -3,
	"unhappy":    -2,
	"upset":      -2,
	"useful":     2,
	"useless":    -2,
	"waste":      -1,
	"weak":       -2,
	"welcome":    2,
	"win":        4,
	"wonderful":  4,
	"worry":      -3,
	"worse":      -3,
	"worst":      -3,
	"wow":        4,
	"wrong":      -2,
}

var negators = map[string]struct{}{
	"not":     {},
	"no":      {},
	"never":   {},
	"cannot":  {},
	"neither": {},
	"nor":     {},
	"without": {},
}
