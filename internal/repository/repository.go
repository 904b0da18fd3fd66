// Package repository handles all interactions with the database.
//
// It contains the raw SQL and scanning code, abstracting persistence away
// from the service layer. Driver errors bubble up unwrapped where the
// global error funnel normalizes them through sqlerr.
package repository
