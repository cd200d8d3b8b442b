// Package defect classifies deviations of an observed structure from its
// ideal reference lattice: vacancies, interstitials and substitutions.
package defect

import (
	"context"
	"fmt"

	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/matsim/internal/core/ports"
	"go.trai.ch/matsim/internal/engine/lattice"
	"go.trai.ch/matsim/internal/engine/spatial"
	"go.trai.ch/zerr"
)

// DefaultOccupancyTolerance is the default distance (in the structure's
// length units) within which an atom counts as occupying a lattice site.
// It is a starting point, not a physical truth; tune it per material class
// through Config.
const DefaultOccupancyTolerance = 0.5

// Config holds the tunable parameters of the classifier.
type Config struct {
	// OccupancyTolerance overrides DefaultOccupancyTolerance when positive.
	OccupancyTolerance float64
}

// Classifier labels lattice deviations by comparing actual atom positions
// against the ideal reference lattice with nearest-neighbor queries.
type Classifier struct {
	reference *lattice.Reference
	evaluator ports.EnergyEvaluator
	logger    ports.Logger
	tolerance float64
}

// NewClassifier creates a Classifier. The evaluator may be nil; formation
// energies are then reported as absent.
func NewClassifier(
	reference *lattice.Reference,
	evaluator ports.EnergyEvaluator,
	logger ports.Logger,
	cfg Config,
) *Classifier {
	tolerance := cfg.OccupancyTolerance
	if tolerance <= 0 {
		tolerance = DefaultOccupancyTolerance
	}

	return &Classifier{
		reference: reference,
		evaluator: evaluator,
		logger:    logger,
		tolerance: tolerance,
	}
}

// Classify detects defects in the structure and estimates their formation
// energies and concentration. It fails only when the reference lattice
// cannot be generated (domain.ErrUnsupportedLattice) or an index cannot be
// built; evaluator failures degrade to absent formation energies.
func (c *Classifier) Classify(ctx context.Context, structure *domain.StructureRecord) (*domain.DefectRecord, error) {
	ideal, err := c.reference.IdealPositions(structure)
	if err != nil {
		return nil, err
	}

	actualIndex, err := spatial.Build(structure.Positions)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to index actual positions")
	}

	idealIndex, err := spatial.Build(ideal)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to index ideal positions")
	}

	record := &domain.DefectRecord{
		Sites:             make(map[domain.DefectKind][][3]float64, 4),
		FormationEnergies: make(map[domain.DefectKind]*float64),
	}
	for _, kind := range domain.DefectKinds() {
		record.Sites[kind] = [][3]float64{}
	}

	scan, err := c.scanSites(structure, ideal, actualIndex, record)
	if err != nil {
		return nil, err
	}

	if err := c.scanAtoms(structure, idealIndex, scan, record); err != nil {
		return nil, err
	}

	// Dislocation detection is an extension point; no strain-field algorithm
	// is wired in yet, so the category stays empty rather than guessed.
	record.Sites[domain.DefectDislocation] = [][3]float64{}

	c.estimateFormationEnergies(ctx, structure, scan, record)

	record.Concentration = float64(record.Count()) / float64(len(ideal))

	return record, nil
}

// siteScan carries intermediate state between the two detection passes and
// the formation-energy estimation.
type siteScan struct {
	// occupied marks atom indices matched to an ideal site within tolerance.
	// Such atoms can never be interstitials, which enforces the detector
	// priority substitution > vacancy > interstitial.
	occupied map[int]bool

	// representatives are the atoms used to materialize one defect of each
	// kind for energy evaluation. -1 means no candidate.
	vacancyAtom      int
	substitutionAtom int
	substitutionWant domain.InternedString
	interstitialAtom int
}

// scanSites walks every ideal site and classifies it as vacant, occupied, or
// occupied by the wrong species.
func (c *Classifier) scanSites(
	structure *domain.StructureRecord,
	ideal [][3]float64,
	actualIndex *spatial.Index,
	record *domain.DefectRecord,
) (*siteScan, error) {
	scan := &siteScan{
		occupied:         make(map[int]bool, len(ideal)),
		vacancyAtom:      -1,
		substitutionAtom: -1,
		interstitialAtom: -1,
	}

	for siteIdx, site := range ideal {
		dist, atomIdx, err := actualIndex.Nearest(site)
		if err != nil {
			return nil, err
		}

		if dist > c.tolerance {
			record.Sites[domain.DefectVacancy] = append(record.Sites[domain.DefectVacancy], site)
			if scan.vacancyAtom < 0 {
				// Remember the closest real atom so a vacancy can be
				// materialized for energy evaluation.
				scan.vacancyAtom = atomIdx
			}
			continue
		}

		scan.occupied[atomIdx] = true

		expected, ok := structure.Metadata.ExpectedSpecies[siteIdx]
		if !ok || expected == structure.Elements[atomIdx] {
			continue
		}

		record.Sites[domain.DefectSubstitutional] = append(record.Sites[domain.DefectSubstitutional], site)
		record.Substitutions = append(record.Substitutions, domain.Substitution{
			Site:     site,
			Expected: expected,
			Found:    structure.Elements[atomIdx],
		})
		if scan.substitutionAtom < 0 {
			scan.substitutionAtom = atomIdx
			scan.substitutionWant = expected
		}
	}

	return scan, nil
}

// scanAtoms walks every actual atom and reports those farther than the
// tolerance from every ideal site as interstitials. Atoms already matched to
// a site in scanSites are skipped.
func (c *Classifier) scanAtoms(
	structure *domain.StructureRecord,
	idealIndex *spatial.Index,
	scan *siteScan,
	record *domain.DefectRecord,
) error {
	for atomIdx, pos := range structure.Positions {
		if scan.occupied[atomIdx] {
			continue
		}

		dist, _, err := idealIndex.Nearest(pos)
		if err != nil {
			return err
		}

		if dist <= c.tolerance {
			continue
		}

		record.Sites[domain.DefectInterstitial] = append(record.Sites[domain.DefectInterstitial], pos)
		if scan.interstitialAtom < 0 {
			scan.interstitialAtom = atomIdx
		}
	}

	return nil
}

// estimateFormationEnergies evaluates the unperturbed structure once and a
// structure with one representative defect materialized per non-empty
// category, reporting the difference. Categories stay absent from the map
// when the evaluator is unavailable or fails; zero would be indistinguishable
// from a real measurement.
func (c *Classifier) estimateFormationEnergies(
	ctx context.Context,
	structure *domain.StructureRecord,
	scan *siteScan,
	record *domain.DefectRecord,
) {
	if record.Count() == 0 {
		return
	}

	if c.evaluator == nil || !c.evaluator.Available() {
		return
	}

	perfect, err := c.evaluator.TotalEnergy(ctx, structure)
	if err != nil {
		c.warn("energy evaluator failed on unperturbed structure", err)
		return
	}

	for _, kind := range domain.DefectKinds() {
		if len(record.Sites[kind]) == 0 {
			continue
		}

		perturbed, err := c.materialize(structure, kind, record, scan)
		if err != nil || perturbed == nil {
			continue
		}

		defectEnergy, err := c.evaluator.TotalEnergy(ctx, perturbed)
		if err != nil {
			c.warn(fmt.Sprintf("energy evaluator failed for %s", kind), err)
			continue
		}

		delta := defectEnergy - perfect
		record.FormationEnergies[kind] = &delta
	}
}

// materialize builds a copy of the structure with one defect of the given
// kind applied: atom removed for a vacancy, added for an interstitial,
// species swapped for a substitution.
func (c *Classifier) materialize(
	structure *domain.StructureRecord,
	kind domain.DefectKind,
	record *domain.DefectRecord,
	scan *siteScan,
) (*domain.StructureRecord, error) {
	switch kind {
	case domain.DefectVacancy:
		if scan.vacancyAtom < 0 {
			return nil, nil
		}
		return structure.WithoutAtom(scan.vacancyAtom)

	case domain.DefectInterstitial:
		if scan.interstitialAtom < 0 {
			return nil, nil
		}
		element := structure.Elements[scan.interstitialAtom].String()
		site := record.Sites[domain.DefectInterstitial][0]
		return structure.WithAtom(element, site), nil

	case domain.DefectSubstitutional:
		if scan.substitutionAtom < 0 {
			return nil, nil
		}
		return structure.WithSpecies(scan.substitutionAtom, scan.substitutionWant.String())

	default:
		return nil, nil
	}
}

func (c *Classifier) warn(msg string, err error) {
	if c.logger == nil {
		return
	}
	c.logger.Warn(fmt.Sprintf("%s: %v", msg, err))
}
