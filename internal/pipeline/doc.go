// Package pipeline fans decomposition targets out to a fixed pool of workers
// and hands results back to the caller in input order.
//
// The only contract to implement is Decomposer; sk.Decomposer satisfies it.
package pipeline
