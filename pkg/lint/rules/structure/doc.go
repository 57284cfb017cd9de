// Package structure provides lint rules for class structure.
//
// Rules in this package:
//   - ST01: Classes must override equals() and hashCode() together
package structure
