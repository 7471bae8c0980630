// SPDX-License-Identifier: MIT
package statistic

import "github.com/katalvlaran/lvlike/parameters"

// Option configures a statistic constructor.
type Option func(*options)

type options struct {
	systematics []Systematic
	magnitude   *parameters.Parameter
}

// WithSystematics appends systematics, applied to predictions in order.
func WithSystematics(s ...Systematic) Option {
	return func(o *options) { o.systematics = append(o.systematics, s...) }
}

// WithAbsoluteMagnitude replaces the default sampled "M" parameter of a
// Supernova statistic, for example with parameters.Fixed("M", -19.3).
// Other statistics ignore it.
func WithAbsoluteMagnitude(p *parameters.Parameter) Option {
	return func(o *options) { o.magnitude = p }
}

func gatherOptions(user ...Option) options {
	var o options
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
