// Package vlsiplace (module github.com/vlsiplace/vlsiplace) is a simulated-annealing
// placement engine: it assigns a set of resource-demanding vertices onto a
// rectangular grid of capacity-constrained chips so as to minimise the
// weighted sum of per-net bounding-box wire length.
//
// What:
//
//   - placement/   — the engine: grid/vertex/net state, resource accounting,
//     the bounding-box cost model (mesh and torus), move generation, the
//     swap-attempt state machine, and the batch driver.
//   - problemgen/   — deterministic synthetic-problem generation and YAML
//     problem (de)serialisation.
//   - schedule/     — temperature schedules, convergence detection, and
//     concurrent scheduling of independent annealing runs.
//   - metrics/prom/ — an optional Prometheus adapter for batch statistics.
//   - cmd/placesim/ — a CLI driver composing the above.
//
// Why:
//
//   - Chip placement (and its relatives: FPGA placement, VLSI cell
//     placement) is naturally expressed as simulated annealing over a
//     capacitated grid; the hard part is making every candidate move cheap
//     and every rejected move free, so millions of moves per second are
//     achievable.
//
// The engine itself is single-threaded and synchronous per *placement.State;
// concurrent annealing runs must use disjoint States (see schedule.RunIndependent).
package vlsiplace
