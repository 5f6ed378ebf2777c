package stemma

import (
	"sort"

	"github.com/eggphy/eggphy-cli/internal/model"
)

// FamilyGroup is one stemma root with its classified members, sorted by
// ascending date. The family and tree views render these directly.
type FamilyGroup struct {
	Info    model.FamilyInfo `json:"info"`
	Members []model.Witness  `json:"members"`
}

// GroupByFamily classifies every witness and buckets the collection by
// family. Members keep their collection order until sorted by the caller.
func GroupByFamily(witnesses []model.Witness) map[model.FamilyLabel][]model.Witness {
	groups := make(map[model.FamilyLabel][]model.Witness)
	for i := range witnesses {
		label := Classify(&witnesses[i])
		groups[label] = append(groups[label], witnesses[i])
	}
	return groups
}

// FamilyGroups builds the canonical stemma grouping: one group per family in
// root order, every family present even when empty, members date-ascending.
func FamilyGroups(witnesses []model.Witness) []FamilyGroup {
	byFamily := GroupByFamily(witnesses)

	groups := make([]FamilyGroup, 0, len(model.Families()))
	for _, info := range model.Families() {
		members := byFamily[info.Label]
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].DateYear() < members[j].DateYear()
		})
		groups = append(groups, FamilyGroup{Info: info, Members: members})
	}
	return groups
}
