// Package domain contains the core entities of the flashcard system: decks,
// cards with their review schedule, and the per-user study statistics. It is
// independent of any storage backend or delivery mechanism.
package domain
