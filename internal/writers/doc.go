// Package writers turns domain values into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (JSON/JSONL/TSV).
//   - basis and sk stay domain-only; pipeline stays orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
//   - Every writer runs in its own goroutine fed by a channel and reports a
//     single error on completion; it drains its input after a failure.
package writers
