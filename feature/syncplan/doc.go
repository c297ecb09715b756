// Package syncplan turns a finalized reconciliation into ordered work and
// executes it against the world store and the campaign service.
//
// # Plan building
//
// Per category, a selected matched remote row becomes a link job, a
// selected unmatched remote row becomes an import (a full local record when
// opted in, otherwise a lightweight reference journal), and a selected
// unmatched local row becomes an export. Factions and session recaps are
// import-only. The plan is built once and consumed exactly once.
//
// # Execution
//
// Four phases run strictly in order: create local records (writing back
// cross-reference ids), import references, derive recap journals sorted
// ascending by session date, then the remote export/link jobs. Ordering is
// a correctness mechanism, not an optimization: later jobs link against ids
// the earlier phases wrote.
//
// The shared {processed, total} counter advances exactly once per job
// whatever the outcome, so it always reaches total. A missing source
// document is a skipped, processed unit; transport and validation errors
// accumulate in the report's failure list and never abort the plan. A
// re-entrancy guard rejects a second Execute while one is in flight. The
// engine never retries; re-running failed jobs is the caller's decision.
//
// After a run, PushLinks mirrors the local link graph onto the campaign
// service, creating missing relationship links and pruning stale ones that
// are fully under local management.
package syncplan
