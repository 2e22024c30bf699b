// Package model defines core types shared by the KNN packages.
//
// # Data Types
//
//   - Point: Feature vector of fixed dimension
//   - ReferenceSet: Ordered training points sharing one dimension
//   - Label: Type constraint for regression targets and class labels
//   - Neighbor: Selected reference point with its distance and label
//
// Values are treated as immutable: nothing in this module writes into a
// Point or ReferenceSet after construction.
package model
