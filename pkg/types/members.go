package types

// Member is a named entry of a Members table.
type Member struct {
	Name string
	Type Type
}

// Members is an insertion-ordered name to type table. The zero value is empty
// and ready to use.
type Members struct {
	order []string
	index map[string]Type
}

// Set records name, keeping its original position if it already exists.
func (m *Members) Set(name string, t Type) {
	if m.index == nil {
		m.index = make(map[string]Type)
	}
	if _, ok := m.index[name]; !ok {
		m.order = append(m.order, name)
	}
	m.index[name] = t
}

func (m *Members) Get(name string) (Type, bool) {
	t, ok := m.index[name]
	return t, ok
}

func (m *Members) Len() int { return len(m.order) }

func (m *Members) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

func (m *Members) List() []Member {
	out := make([]Member, len(m.order))
	for i, name := range m.order {
		out[i] = Member{Name: name, Type: m.index[name]}
	}
	return out
}
