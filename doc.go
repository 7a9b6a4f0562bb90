// Package trackway is an in-memory playground for dynamic, non-Euclidean
// transportation networks: an integer-length track graph that can be
// subdivided and fused on the fly, and "snakes" (trains) that move over
// it by continuously reserving and releasing contiguous track.
//
// 🚂 What is trackway?
//
//	A small, dependency-light library that brings together:
//		• Core primitives: vertices, integer-length edges, subdivision
//		  (split/unsplit), fusion (merge) and junction pairs
//		• Reservations: per-edge interval lists and per-vertex occupancy,
//		  with oracle-steered snake growth at either end
//		• Search: junction-respecting pathfinding between arbitrary
//		  positions, synthesizing temporary vertices as needed
//		• A session façade: one owner, tick stepping, change events
//
// ✨ Why trackway?
//
//   - Integer-only geometry – no floating-point drift inside the core
//   - Values over references – junction pairs are canonical (edge, sign)
//     tuples, so subdivision can never dangle a pair
//   - Deterministic – stable identifiers, stable enumeration order,
//     reproducible oracle candidate lists
//   - Single-owner concurrency model – no locks, no surprises
//
// Everything is organized under four subpackages plus a helper:
//
//	core/    — the graph: construction, mutation, queries, invariants
//	reserve/ — the snake/reservation engine and its oracle contract
//	search/  — breadth-first routing over the junction pair table
//	session/ — the owning façade: ticks, events, ordering rules
//	builder/ — canned layouts (lines, loops, wyes, crossings) for tests
//	           and embedders
//
// Quick ASCII example:
//
//	    a────m────b
//	         │
//	         c
//
//	a 100-unit span split at m, with a branch joined toward c: a snake
//	growing from a consults its oracle at m and may turn or continue.
//
// Dive into the per-package docs for the data model, the invariants each
// operation preserves, and the growth state machine.
package trackway
