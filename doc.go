// Package waterfall implements a payday-driven waterfall transfer engine.
//
// Once a month, on the last working day, it takes the available balance of a
// main account and pours it into a priority-ordered list of savings pots:
// each pot is filled up to its target before the next one receives anything.
//
// The engine owns a single piece of durable state, the Schedule, which tracks
// the current pay cycle (pending, executed or skipped) and the next payment
// date. Everything else (balances, pots, transfers) is read fresh from a
// banking Gateway on every run, which is also what makes retries after a
// partial failure self-correcting: a pot that already received its transfer
// no longer shows any need.
package waterfall
