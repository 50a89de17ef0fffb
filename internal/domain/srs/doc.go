// Package srs implements the spaced-repetition scheduling algorithm, a
// four-grade SM-2 variant, and the per-user daily statistics tracker. All
// functions are pure: they return updated copies and never touch storage.
package srs
