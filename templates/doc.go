// Package templates holds the built-in template assets, embedded at
// build time, and the descriptor registry that binds each asset to its
// output path pattern, declared variables and feature gate.
package templates
