// SPDX-License-Identifier: MIT
package parameters_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlike/parameters"
)

func TestFullName(t *testing.T) {
	cases := []struct {
		prefix, name, want string
	}{
		{"", "M", "M"},
		{"sn_ddf", "M", "sn_ddf_M"},
		{"lens0", "bias", "lens0_bias"},
	}
	for _, tc := range cases {
		got, err := parameters.FullName(tc.prefix, tc.name)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
	_, err := parameters.FullName("x", "")
	require.ErrorIs(t, err, parameters.ErrEmptyName)
}

func TestParamsMap_Get(t *testing.T) {
	m := parameters.ParamsMap{"a": 1, "src_b": 2, "bad": math.NaN()}

	v, err := m.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = m.GetFromPrefix("src", "b")
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)

	_, err = m.Get("missing")
	require.ErrorIs(t, err, parameters.ErrParameter)
	assert.Contains(t, err.Error(), `"missing"`)

	_, err = m.Get("bad")
	require.ErrorIs(t, err, parameters.ErrParameter)

	assert.Equal(t, []string{"a", "bad", "src_b"}, m.Names())
}

func TestRequiredParameters_OrderAndDedup(t *testing.T) {
	r := parameters.NewRequiredParameters("b", "a", "b", "", "c")
	assert.Equal(t, []string{"b", "a", "c"}, r.Names())
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Contains("a"))
	assert.False(t, r.Contains("z"))
	assert.Equal(t, "[b a c]", r.String())

	var zero parameters.RequiredParameters
	assert.Equal(t, 0, zero.Len())
	assert.Empty(t, zero.Names())
}

func TestRequiredParameters_UnionIsPure(t *testing.T) {
	a := parameters.NewRequiredParameters("x", "y")
	b := parameters.NewRequiredParameters("y", "z")

	u := a.Union(b)
	assert.Equal(t, []string{"x", "y", "z"}, u.Names())
	assert.Equal(t, []string{"x", "y"}, a.Names())
	assert.Equal(t, []string{"y", "z"}, b.Names())

	// repeated calls give equal lists
	assert.True(t, u.Equal(a.Union(b)))
	assert.False(t, u.Equal(b.Union(a)))

	// Names returns a copy
	names := u.Names()
	names[0] = "mutated"
	assert.Equal(t, "x", u.Names()[0])
}

func TestRequiredParameters_Validate(t *testing.T) {
	r := parameters.NewRequiredParameters("a", "b", "c")
	assert.NoError(t, r.Validate(parameters.ParamsMap{"a": 1, "b": 2, "c": 3, "extra": 4}))

	err := r.Validate(parameters.ParamsMap{"b": 2})
	require.ErrorIs(t, err, parameters.ErrParameter)
	assert.Contains(t, err.Error(), "a, c")
	assert.Equal(t, []string{"a", "c"}, r.Missing(parameters.ParamsMap{"b": 2}))
}

func TestSet_Cycle(t *testing.T) {
	m := parameters.Sampled("M")
	alpha := parameters.Fixed("alpha", 0.14)
	s, err := parameters.NewSet("sn", m, alpha)
	require.NoError(t, err)
	require.Equal(t, "sn", s.Prefix())

	assert.Equal(t, []string{"sn_M"}, s.RequiredParameters().Names())
	assert.True(t, math.IsNaN(m.Value()))
	assert.False(t, m.IsSet())
	assert.Equal(t, 0.14, alpha.Value())

	require.NoError(t, s.Update(parameters.ParamsMap{"sn_M": -19.3}))
	assert.Equal(t, -19.3, m.Value())

	p, ok := s.Lookup("M")
	require.True(t, ok)
	assert.Same(t, m, p)

	s.Reset()
	assert.True(t, math.IsNaN(m.Value()))
	assert.Equal(t, 0.14, alpha.Value())
}

func TestSet_UpdateFailureLeavesValues(t *testing.T) {
	a, b := parameters.Sampled("a"), parameters.Sampled("b")
	s, err := parameters.NewSet("", a, b)
	require.NoError(t, err)
	require.NoError(t, s.Update(parameters.ParamsMap{"a": 1, "b": 2}))

	err = s.Update(parameters.ParamsMap{"a": 10})
	require.ErrorIs(t, err, parameters.ErrParameter)
	assert.Equal(t, 1.0, a.Value())
	assert.Equal(t, 2.0, b.Value())
}

func TestNewSet_Errors(t *testing.T) {
	_, err := parameters.NewSet("p", nil)
	require.ErrorIs(t, err, parameters.ErrNilParameter)
	_, err = parameters.NewSet("p", parameters.Sampled(""))
	require.ErrorIs(t, err, parameters.ErrEmptyName)
	_, err = parameters.NewSet("p", parameters.Sampled("x"), parameters.Fixed("x", 1))
	require.ErrorIs(t, err, parameters.ErrDuplicateName)
}

func TestDerivedCollection(t *testing.T) {
	c, err := parameters.NewDerivedCollection(
		parameters.DerivedParameter{Section: "sn", Name: "chi2", Value: 3},
	)
	require.NoError(t, err)
	o, err := parameters.NewDerivedCollection(
		parameters.DerivedParameter{Section: "bao", Name: "chi2", Value: 4},
	)
	require.NoError(t, err)

	merged, err := c.Merge(o)
	require.NoError(t, err)
	assert.Equal(t, 2, merged.Len())
	assert.Equal(t, map[string]float64{"sn--chi2": 3, "bao--chi2": 4}, merged.Map())
	v, ok := merged.Get("bao", "chi2")
	require.True(t, ok)
	assert.Equal(t, 4.0, v)
	assert.Equal(t, 1, c.Len()) // operands untouched

	_, err = merged.Merge(c)
	require.ErrorIs(t, err, parameters.ErrDuplicateDerived)

	err = c.Add(parameters.DerivedParameter{Section: "", Name: "x"})
	require.ErrorIs(t, err, parameters.ErrEmptyName)
}
