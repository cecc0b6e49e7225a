package taxonomy

// Category names of the FISH capital model.
const (
	Financial    = "Financial"
	Intellectual = "Intellectual"
	Social       = "Social"
	Human        = "Human"
)

// Category colors as hex strings, shared by the terminal and HTML renderers.
const (
	ColorBlue   = "#007BFF"
	ColorGreen  = "#28A745"
	ColorRed    = "#DC3545"
	ColorYellow = "#FFC107"
)

var fishCategories = []Category{
	{
		Name:  Financial,
		Color: ColorBlue,
		Metrics: []Metric{
			{Name: "Liquidity & Cash Flow", Short: "Liquidity"},
			{Name: "Debt Management", Short: "Debt Mgmt"},
			{Name: "Funding Flexibility", Short: "Funding"},
		},
	},
	{
		Name:  Intellectual,
		Color: ColorGreen,
		Metrics: []Metric{
			{Name: "Market Insights", Short: "Insights"},
			{Name: "Innovation & R&D", Short: "Innovation"},
			{Name: "Adaptability", Short: "Adapt"},
		},
	},
	{
		Name:  Social,
		Color: ColorRed,
		Metrics: []Metric{
			{Name: "Networking & Partnerships", Short: "Network"},
			{Name: "Reputation & Trust", Short: "Reputation"},
			{Name: "Influence & Engagement", Short: "Influence"},
		},
	},
	{
		Name:  Human,
		Color: ColorYellow,
		Metrics: []Metric{
			{Name: "Expertise & Skill Levels", Short: "Expertise"},
			{Name: "Experience & Leadership", Short: "Leadership"},
			{Name: "Capacity for Growth & Talent Pipeline", Display: "Capacity for Growth", Short: "Growth Cap"},
		},
	},
}

var fish = mustNew(fishCategories)

// Default returns the FISH taxonomy: twelve metrics in four categories.
func Default() *Taxonomy {
	return fish
}

func mustNew(categories []Category) *Taxonomy {
	t, err := New(categories)
	if err != nil {
		panic(err)
	}
	return t
}
