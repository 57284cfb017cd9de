// Package persistence provides lint rules for persistence mapping annotations.
//
// Rules in this package:
//   - PR01: Entity fields must carry @Column with at least one attribute
package persistence
