// Package domain models jacket load distribution during offshore installation.
//
// # Background
//
// A jacket is a steel support structure lowered onto the seabed and levelled
// before the topside is installed. During levelling, the crew reads the
// hydraulic pressure (bar) at each of the four legs. What matters for a safe
// set-down is not the absolute pressure but how the total load is shared
// between the legs: each leg must carry at least a minimum percentage of the
// total, and those minimums differ per jacket and per load case.
//
// # Legs
//
// The four legs are identified A through D. Operational drawings label them
// by position instead:
//
//	A = BP, B = BQ, C = AQ, D = AP
//
// Both forms appear in this package: the single letters are the canonical
// identifiers, the position labels are used in the persisted register and on
// displays. Canonical order is A, B, C, D everywhere.
//
// # Load cases
//
//	EAC  environmental / as-constructed (normal levelling)
//	OBS  observed / extreme condition
//
// The case selects which row of minimum targets applies.
//
// # Distribution calculation
//
//	total = Σ pressure[leg]
//	percentage[leg] = 100 * pressure[leg] / total   (all zero when total is 0)
//
// A zero total is a valid "no load yet" state, not an error. A leg fails when
// its percentage is strictly below its minimum target; a leg exactly at the
// target passes. See [ComputeDistribution].
//
// # Reference table
//
// Minimum targets are hand-curated static data, one row per jacket per case,
// fixed at design time by the installation engineers. The table is populated
// at init and never mutated; [Targets] returns copies. Values must not be
// "corrected" in code — they come from the levelling procedure documents.
package domain
