// Package service contains the application-specific use cases and business
// logic. It orchestrates domain objects and the store (internal/store) to
// manage a user's decks, cards and study statistics.
//
// Every operation follows the same shape:
//
//  1. Ask the identity who is calling and refuse unauthenticated callers
//     before touching the store.
//  2. Run all reads and writes inside one store transaction, so an operation
//     either commits every change or none.
//  3. Return domain sentinel errors for expected outcomes and wrap
//     unexpected store failures in ServiceError.
//
// The review operation, which also touches cards, decks and statistics, lives
// in the card_review subpackage.
package service
