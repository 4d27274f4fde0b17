// Package models defines the core domain models for gatherings.
//
// # Models
//
//   - GlobalMember: a person known to the whole store, reusable across gatherings
//   - Gathering: a bounded expense-sharing event with its own member list
//   - GatheringMember: one GlobalMember's participation in one Gathering
//   - Expense: money a member spent on behalf of the group
//   - Payment: money a member paid back or received, including settlements
//   - AppData: the single persisted aggregate holding everything above
//
// # Design Principles
//
// 1. **Whole-aggregate persistence**: AppData is read and written as one unit
// 2. **Avoid circular references**: relationships use ID strings, not pointers
// 3. **Exact amounts**: currency values use Amount (fixed-point), never float64
// 4. **Wire compatibility**: JSON field names match the exported document format
//
// Entities are replaced, not mutated, outside of the repository, which owns the
// store exclusively.
package models
