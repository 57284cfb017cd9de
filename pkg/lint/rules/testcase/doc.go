// Package testcase provides lint rules for test classes.
//
// Rules in this package:
//   - TS01: Assertions must use the fluent assertThat() style
package testcase
