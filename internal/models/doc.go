// Package models defines the core domain models for tripkitty.
//
// # Model Overview
//
//   - User: a registered account; members of a trip reference user IDs
//   - Trip: a bounded group of members sharing expenses over some period
//   - Member: a user's membership in one trip, with an ADMIN or MEMBER role
//   - Expense: a shared cost paid by one member and split among participants
//   - Payment: a direct settlement between two members
//   - AdhocPayment: a member pre-funding the trip's central money keeper
//
// # Design Principles
//
// 1. **Append-only transactions**: expenses and payments are never mutated in
// place; balances are always recomputed by replaying the full log.
// 2. **Avoid circular references**: relationships use ID strings instead of
// pointers.
// 3. **Roles stay out of arithmetic**: the ADMIN role gates membership
// management and deletion only; it has no bearing on balance computation.
package models
