// Package kernel contains shared value objects used across the domain model:
// identifiers, geographic points, and monetary amounts.
//
// All kernel types are immutable value objects created through validating
// constructors. The zero value of every type is invalid and fails Validate,
// which repositories rely on when reconstructing aggregates from persistence.
package kernel
