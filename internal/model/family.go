package model

// FamilyLabel identifies one of the seven textual-tradition families. The
// string values are the dataset codes the legacy pages already use, so they
// survive round trips through the JSON API unchanged.
type FamilyLabel string

const (
	FamilyClassical     FamilyLabel = "A_Classical"
	FamilyLongSoak      FamilyLabel = "B_LongSoak"
	FamilyModern        FamilyLabel = "C_Modern"
	FamilySaltWaterBoil FamilyLabel = "D_SaltWaterBoil"
	FamilyMeta          FamilyLabel = "E_Meta"
	FamilyAnomalous     FamilyLabel = "F_Anomalous"
	FamilyCepak         FamilyLabel = "G_Cepak"
)

// FamilyInfo describes one family for display.
type FamilyInfo struct {
	Label       FamilyLabel `json:"label"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Symbol      string      `json:"symbol"`
	Color       string      `json:"color"`
}

// familyRootOrder is the canonical presentation order of the stemma roots:
// the classical archetypes first, then the innovations in hypothesized
// sequence, with anomalies and meta-witnesses last.
var familyRootOrder = []FamilyLabel{
	FamilyClassical,
	FamilyLongSoak,
	FamilyCepak,
	FamilySaltWaterBoil,
	FamilyModern,
	FamilyAnomalous,
	FamilyMeta,
}

var familyInfo = map[FamilyLabel]FamilyInfo{
	FamilyClassical: {
		Label:       FamilyClassical,
		Name:        "Family A: Classical & Renaissance Tradition",
		Description: "The full gall-ink recipe, with a soak-then-boil process. The archetypes.",
		Symbol:      "α",
		Color:       "#FF6B6B",
	},
	FamilyLongSoak: {
		Label:       FamilyLongSoak,
		Name:        "Family B: The 'Long-Soak' Lineage",
		Description: "Innovation 1: Galls are dropped, but a slow multi-day soak is required.",
		Symbol:      "β",
		Color:       "#4ECDC4",
	},
	FamilyModern: {
		Label:       FamilyModern,
		Name:        "Family C: The 'Modern Baby' (Recombination)",
		Description: "The final synthesis: No galls, no soak, and precise quantities.",
		Symbol:      "γ",
		Color:       "#45B7D1",
	},
	FamilySaltWaterBoil: {
		Label:       FamilySaltWaterBoil,
		Name:        "Family D: The 'Salt-Water-Boil' Lineage",
		Description: "Parallel Innovation: The process is simplified to a direct salt water boil.",
		Symbol:      "δ",
		Color:       "#96CEB4",
	},
	FamilyMeta: {
		Label:       FamilyMeta,
		Name:        "Family E: Meta-Witnesses & Outliers",
		Description: "Witnesses that test, analyze, or exist outside the main tradition.",
		Symbol:      "ε",
		Color:       "#FFEAA7",
	},
	FamilyAnomalous: {
		Label:       FamilyAnomalous,
		Name:        "Family F: Anomalous 'Boil-Then-Write' Tradition",
		Description: "A separate branch where the process is reversed. Egg is boiled before writing.",
		Symbol:      "ζ",
		Color:       "#DDA0DD",
	},
	FamilyCepak: {
		Label:       FamilyCepak,
		Name:        "Family G: Cépak's Modernized Hybrid",
		Description: "Innovation 2: Precise quantities are added to the gall-less, long-soak recipe.",
		Symbol:      "η",
		Color:       "#98D8C8",
	},
}

// Families returns the family descriptors in canonical root order.
func Families() []FamilyInfo {
	infos := make([]FamilyInfo, 0, len(familyRootOrder))
	for _, label := range familyRootOrder {
		infos = append(infos, familyInfo[label])
	}
	return infos
}

// Family returns the descriptor for a label. Unknown labels fall back to the
// meta family so display code never dereferences a missing entry.
func Family(label FamilyLabel) FamilyInfo {
	if info, ok := familyInfo[label]; ok {
		return info
	}
	return familyInfo[FamilyMeta]
}
