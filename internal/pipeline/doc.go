// Package pipeline runs a load through a fixed sequence of steps:
// parse, aggregate, sort and summarize.
//
// Design decision: Each stage is a Step that receives the shared *model.Load
// rather than a direct function call chain, so stages can be logged,
// replaced in tests, and extended without touching the orchestration.
// The pipeline stops at the first failing step; the Load then carries the
// error and the list of steps that completed.
package pipeline
