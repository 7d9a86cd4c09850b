// Package models defines the core domain models for Forkful.
//
// # Models
//
//   - User: Registered account with a directional friend list
//   - Group: Named set of members deciding something together, owned by one user
//   - Vote: One member's category selections within a group
//
// # Design Principles
//
// 1. **Groups are owned rows**: a group lives once, keyed by its ID. Users
// reference the groups they own by ID and never carry embedded copies.
// 2. **Avoid circular references**: relationships are ID strings, not pointers.
// 3. **One vote per member per group**: a re-cast replaces the stored selections.
package models
