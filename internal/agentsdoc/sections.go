package agentsdoc

// Sections is an ordered mapping from section key to body text. Keys keep
// their first-seen order so custom sections are emitted deterministically
// across repeated runs. Setting an existing key replaces the body without
// moving the key.
type Sections struct {
	keys   []string
	bodies map[string]string
}

func NewSections() *Sections {
	return &Sections{bodies: make(map[string]string)}
}

// SectionsFromMap builds a Sections value from a plain map, inserting keys in
// the given order. Used by callers that already hold an ordered key list.
func SectionsFromMap(keys []string, bodies map[string]string) *Sections {
	s := NewSections()
	for _, k := range keys {
		if body, ok := bodies[k]; ok {
			s.Set(k, body)
		}
	}
	return s
}

func (s *Sections) Set(key, body string) {
	if _, exists := s.bodies[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.bodies[key] = body
}

func (s *Sections) Get(key string) (string, bool) {
	body, ok := s.bodies[key]
	return body, ok
}

// Keys returns the section keys in first-seen order. The returned slice is a
// copy; mutating it does not affect the Sections value.
func (s *Sections) Keys() []string {
	return append([]string(nil), s.keys...)
}

func (s *Sections) Len() int {
	return len(s.keys)
}

// Clone returns an independent copy preserving key order.
func (s *Sections) Clone() *Sections {
	out := NewSections()
	for _, k := range s.keys {
		out.Set(k, s.bodies[k])
	}
	return out
}
