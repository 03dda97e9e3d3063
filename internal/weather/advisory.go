package weather

// Advisory is the clothing guidance derived from an observation. It is
// computed deterministically from the static rule tables below, so equal
// observations always yield equal advisories.
type Advisory struct {
	Band                  string   `json:"band"`
	Summary               string   `json:"summary"`
	RecommendedCategories []string `json:"recommended_categories"`
	AvoidCategories       []string `json:"avoid_categories"`
	RecommendedMaterials  []string `json:"recommended_materials"`
	AvoidMaterials        []string `json:"avoid_materials"`
}

// temperatureBand is one row of the advisory rule table.
type temperatureBand struct {
	name                  string
	maxC                  float64
	summary               string
	recommendedCategories []string
	avoidCategories       []string
	recommendedMaterials  []string
	avoidMaterials        []string
}

// Bands are evaluated in order; the first row whose maxC exceeds the
// observed temperature wins.
var temperatureBands = []temperatureBand{
	{
		name:                  "freezing",
		maxC:                  0,
		summary:               "Freezing conditions, layer up",
		recommendedCategories: []string{"outerwear", "sweaters", "pants", "boots"},
		avoidCategories:       []string{"shorts", "sandals", "tank_tops"},
		recommendedMaterials:  []string{"wool", "down", "fleece"},
		avoidMaterials:        []string{"linen"},
	},
	{
		name:                  "cold",
		maxC:                  10,
		summary:               "Cold, bring a warm layer",
		recommendedCategories: []string{"outerwear", "sweaters", "pants"},
		avoidCategories:       []string{"shorts", "sandals"},
		recommendedMaterials:  []string{"wool", "fleece", "denim"},
		avoidMaterials:        []string{"linen"},
	},
	{
		name:                  "mild",
		maxC:                  18,
		summary:               "Mild, light layers work well",
		recommendedCategories: []string{"tops", "pants", "light_jackets"},
		avoidCategories:       nil,
		recommendedMaterials:  []string{"cotton", "denim"},
		avoidMaterials:        nil,
	},
	{
		name:                  "warm",
		maxC:                  26,
		summary:               "Warm and comfortable",
		recommendedCategories: []string{"tops", "shorts", "dresses"},
		avoidCategories:       []string{"outerwear", "sweaters"},
		recommendedMaterials:  []string{"cotton", "linen"},
		avoidMaterials:        []string{"wool", "fleece"},
	},
	{
		name:                  "hot",
		maxC:                  1<<31 - 1,
		summary:               "Hot, keep it light and breathable",
		recommendedCategories: []string{"tank_tops", "shorts", "dresses", "sandals"},
		avoidCategories:       []string{"outerwear", "sweaters", "boots"},
		recommendedMaterials:  []string{"linen", "cotton"},
		avoidMaterials:        []string{"wool", "fleece", "leather"},
	},
}

// WMO condition code groups that modify the advisory.
const (
	codeDrizzleMin      = 51
	codeRainMin         = 61
	codeSnowMin         = 71
	codeThunderstormMin = 95
)

// DeriveAdvisory computes the clothing advisory for an observation using
// the static temperature-band and condition-code rule tables.
func DeriveAdvisory(obs *Observation) Advisory {
	var band temperatureBand
	for _, b := range temperatureBands {
		if obs.TemperatureC < b.maxC {
			band = b
			break
		}
	}

	adv := Advisory{
		Band:                  band.name,
		Summary:               band.summary,
		RecommendedCategories: append([]string(nil), band.recommendedCategories...),
		AvoidCategories:       append([]string(nil), band.avoidCategories...),
		RecommendedMaterials:  append([]string(nil), band.recommendedMaterials...),
		AvoidMaterials:        append([]string(nil), band.avoidMaterials...),
	}

	// Precipitation overrides: rain gear in, suede and canvas out.
	switch {
	case obs.ConditionCode >= codeThunderstormMin:
		adv.Summary += ", thunderstorms expected"
		adv.RecommendedCategories = appendUnique(adv.RecommendedCategories, "rain_jackets", "boots")
		adv.AvoidCategories = appendUnique(adv.AvoidCategories, "sandals")
		adv.AvoidMaterials = appendUnique(adv.AvoidMaterials, "suede", "canvas")
	case obs.ConditionCode >= codeSnowMin && obs.ConditionCode < codeThunderstormMin:
		adv.Summary += ", snow expected"
		adv.RecommendedCategories = appendUnique(adv.RecommendedCategories, "boots")
		adv.AvoidCategories = appendUnique(adv.AvoidCategories, "sandals")
		adv.AvoidMaterials = appendUnique(adv.AvoidMaterials, "suede", "canvas")
	case obs.ConditionCode >= codeDrizzleMin:
		adv.Summary += ", expect rain"
		adv.RecommendedCategories = appendUnique(adv.RecommendedCategories, "rain_jackets")
		adv.AvoidCategories = appendUnique(adv.AvoidCategories, "sandals")
		adv.AvoidMaterials = appendUnique(adv.AvoidMaterials, "suede")
	}

	return adv
}

func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		seen := false
		for _, existing := range list {
			if existing == v {
				seen = true
				break
			}
		}
		if !seen {
			list = append(list, v)
		}
	}
	return list
}
