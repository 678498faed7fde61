package classify

import "regexp"

// deathTemplates lists one pattern per vanilla death message. The templates
// are disjoint by construction: no single death line may match two of them,
// otherwise a death would be tallied under an arbitrary cause. Keep new
// entries disjoint from the existing ones.
var deathTemplates = []string{
	"was squashed by.*",
	"was pricked to death",
	"walked into a cactus whilst trying to escape.*",
	"drowned.*",
	"blew up",
	"was blown up by.*",
	"fell from a high place.*",
	"hit the ground too hard",
	"fell off a ladder",
	"fell off some vines",
	"fell out of the water",
	"fell into a patch of.*",
	"was doomed to fall.*",
	"was shot off.*",
	"was blown from a high place.*",
	"went up in flames",
	"burned to death",
	"was burnt to a crisp whilst fighting.*",
	"walked into a fire whilst fighting.*",
	"was slain by.*",
	"was shot by.*",
	"was fireballed by.*",
	"was killed.*",
	"got finished off by.*",
	"tried to swim in lava.*",
	"died",
	"was struck by lighting",
	"starved to death",
	"suffocated in a wall",
	"was pummeled by.*",
	"fell out of the world",
	"was knocked into the void.*",
	"withered away",
}

// deathPatterns wraps each template in the server log prefix, capturing the
// username and the cause phrase. The slice order is the match order; since
// templates are disjoint, order does not affect results but keeps matching
// deterministic.
var deathPatterns = compileDeathPatterns()

func compileDeathPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(deathTemplates))
	for _, tmpl := range deathTemplates {
		patterns = append(patterns,
			regexp.MustCompile(`\[Server thread/INFO\]: ([^ ]+) (`+tmpl+`)`))
	}
	return patterns
}
