package round

import "errors"

var (
	// ErrInvalidPhaseTransition reports an operation attempted outside its
	// required phase, or a SetPhase target that is not the valid successor.
	ErrInvalidPhaseTransition = errors.New("invalid phase transition")
	// ErrDuplicateCellAssignment reports two distinct units assigned to the
	// exact same cell.
	ErrDuplicateCellAssignment = errors.New("cell already assigned to another unit")
	// ErrDuplicateUnitIndex is a consistency guard; AddPlacement replaces an
	// existing unit's cell instead of raising it.
	ErrDuplicateUnitIndex = errors.New("duplicate unit index")
	// ErrUnitIndexOutOfRange reports a unit index outside 1..total_units.
	ErrUnitIndexOutOfRange = errors.New("unit index out of range")
	// ErrUnitQuotaExceeded reports a placement that would exceed the patrol
	// or EMS allocation of the scenario.
	ErrUnitQuotaExceeded = errors.New("unit type quota exceeded")
	// ErrPlacementNotFound reports a removal for a unit that is not placed.
	ErrPlacementNotFound = errors.New("placement not found")
	// ErrIncompletePlacement reports a commit with fewer placements than
	// available units.
	ErrIncompletePlacement = errors.New("all units must be placed before commit")
	// ErrAlreadyCommitted reports a mutation attempted at or past the commit
	// phase.
	ErrAlreadyCommitted = errors.New("round already committed")
)
