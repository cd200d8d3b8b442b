package domain

// DefectKind names one category of lattice deviation.
type DefectKind string

const (
	// DefectVacancy is an ideal site without a nearby actual atom.
	DefectVacancy DefectKind = "vacancy"

	// DefectInterstitial is an actual atom without a nearby ideal site.
	DefectInterstitial DefectKind = "interstitial"

	// DefectSubstitutional is an occupied ideal site holding the wrong element.
	DefectSubstitutional DefectKind = "substitutional"

	// DefectDislocation is reserved for a future strain-field detector.
	DefectDislocation DefectKind = "dislocation"
)

// DefectKinds returns all defect kinds in a stable order.
func DefectKinds() []DefectKind {
	return []DefectKind{
		DefectVacancy,
		DefectInterstitial,
		DefectSubstitutional,
		DefectDislocation,
	}
}

// Substitution describes one substitutional defect: the ideal site, the
// element expected there and the element actually found.
type Substitution struct {
	Site     [3]float64     `json:"site"`
	Expected InternedString `json:"expected"`
	Found    InternedString `json:"found"`
}

// DefectRecord is the outcome of defect classification for one structure.
//
// FormationEnergies entries are pointers on purpose: a nil entry means the
// energy evaluator had no data for that category, which must stay
// distinguishable from a measured zero.
type DefectRecord struct {
	Sites             map[DefectKind][][3]float64 `json:"sites"`
	FormationEnergies map[DefectKind]*float64     `json:"formation_energies,omitempty"`
	Substitutions     []Substitution              `json:"substitutions,omitempty"`
	Concentration     float64                     `json:"concentration"`
}

// Count returns the total number of detected defects across all kinds.
func (r *DefectRecord) Count() int {
	n := 0
	for _, sites := range r.Sites {
		n += len(sites)
	}
	return n
}
