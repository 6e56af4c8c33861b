package types

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Specializations maps type parameters to the types substituted for them.
type Specializations map[*TypeParameterType]Type

// Lookup finds the substitution for p. A parameter rebuilt from the same
// generic parameter declaration matches as well as the identical value.
func (s Specializations) Lookup(p *TypeParameterType) (Type, bool) {
	if t, ok := s[p]; ok {
		return t, true
	}
	if p == nil || p.Decl == nil {
		return nil, false
	}
	for key, t := range s {
		if key.Decl == p.Decl {
			return t, true
		}
	}
	return nil, false
}

// Merge returns a new map holding s overlaid with inner; entries of inner win.
func (s Specializations) Merge(inner Specializations) Specializations {
	out := make(Specializations, len(s)+len(inner))
	maps.Copy(out, s)
	maps.Copy(out, inner)
	return out
}

// Without returns a copy of s lacking p.
func (s Specializations) Without(p *TypeParameterType) Specializations {
	out := maps.Clone(s)
	for key := range out {
		if key == p || (p.Decl != nil && key.Decl == p.Decl) {
			delete(out, key)
		}
	}
	return out
}

// Restrict keeps only the substitutions for params, keyed by params' own values.
func (s Specializations) Restrict(params []*TypeParameterType) Specializations {
	var out Specializations
	for _, p := range params {
		if t, ok := s.Lookup(p); ok {
			if out == nil {
				out = make(Specializations, len(params))
			}
			out[p] = t
		}
	}
	return out
}

// ParameterNames lists the substituted parameter names in sorted order.
func (s Specializations) ParameterNames() []string {
	names := make([]string, 0, len(s))
	for _, key := range maps.Keys(s) {
		names = append(names, key.ParameterName)
	}
	slices.Sort(names)
	return names
}
