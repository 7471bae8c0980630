// Package parameters holds the parameter vocabulary shared by statistics,
// likelihoods and sampler connectors.
//
// The parameters package provides:
//
//   - ParamsMap, the name → value map a sampler hands to Update.
//   - RequiredParameters, an ordered duplicate-free list of names that a
//     component must find in every ParamsMap. It is a value: combining two
//     lists with Union never mutates either.
//   - Parameter and Set: named parameters that are either sampled (read from
//     the ParamsMap under a prefixed full name) or fixed at construction.
//   - DerivedParameter and DerivedCollection for quantities a likelihood
//     reports back to the sampler ("section--name").
//
// Full names follow the "prefix_name" convention; an empty prefix leaves the
// name untouched.
package parameters
