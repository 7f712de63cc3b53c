// Package completion adapts the analysis service's completion protocol to
// the editor's completion UI model.
//
// # Architecture
//
// The package has three cooperating parts:
//
//   - Convert: pure mapping from one service completion record to an
//     editor item, translating coordinates and the kind enumeration
//   - session: the per-response correlation table from UI items back to
//     the service records they were derived from
//   - Provider: stateful orchestration of the provide / resolve /
//     after-insert lifecycle against the service and the editor host
//
// # Error policy
//
// The Provider never propagates service failures to the host. A failed
// completion request must not crash the editing experience, so every
// failure degrades silently: provide returns an empty degraded result,
// resolve tells the host to keep the prior item, and the after-insert
// workflow ends without side effects. Each swallowed branch is logged at
// debug level; none of them changes control flow.
//
// # Staleness
//
// The host may hold items from a superseded completion session (the user
// kept typing before resolving an old item). Lookups against the current
// session tolerate misses: a stale item is returned unchanged rather
// than treated as an error.
package completion
