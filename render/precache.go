package render

import (
	"github.com/df-mc/isorender/anvil"
	"github.com/df-mc/isorender/proplist"
	"github.com/zaataylor/cartesian"
)

// stateFor builds a synthetic BlockState for precache warming, where no
// real parsed chunk supplies one.
func stateFor(blockName string, props map[string]string) anvil.BlockState {
	return anvil.BlockState{Name: blockName, Properties: proplist.FromMap(props)}
}

// PropertyDomain names one property key and the finite set of values a
// precache pass should enumerate for it (e.g. "axis" -> ["x","y","z"]).
type PropertyDomain struct {
	Key    string
	Values []string
}

// Warm enumerates every reachable (block short-name, properties)
// combination across domains via the cartesian product of each
// property's declared value domain, and builds each one's sprite through
// rs so the texture and partial-sprite caches are populated ahead of a
// parallel render sweep. The built composite sprites are discarded: Warm
// does not store them in the composite-sprite cache, so Resolve still
// builds and caches each composite sprite on its first request.
// Grounded on the teacher's own cartesian.NewCartesianProduct use for
// enumerating custom block-state permutations, repurposed here from
// up-front Bedrock block registration to Anvil asset-rule warming.
func (rs *RuleSet) Warm(blockName string, domains []PropertyDomain, biomes []string) error {
	rule, ok := rs.rules[blockName]
	if !ok || rule.Kind == KindNothing || len(domains) == 0 {
		return nil
	}

	sets := make([][]string, len(domains))
	for i, d := range domains {
		sets[i] = d.Values
	}
	combinations := cartesian.CartesianProduct(sets)

	biomeList := biomes
	if rule.TintCategory == "" {
		biomeList = []string{""}
	} else if len(biomeList) == 0 {
		biomeList = []string{""}
	}

	for _, combo := range combinations {
		props := make(map[string]string, len(domains))
		for i, d := range domains {
			props[d.Key] = combo[i]
		}
		for _, biome := range biomeList {
			if _, err := rs.build(rule, stateFor(blockName, props), biome); err != nil {
				return err
			}
		}
	}
	return nil
}
