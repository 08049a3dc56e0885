package las

import "strconv"

// Dedupe returns candidate if it is not registered, otherwise candidate_N
// for the smallest positive N that is not registered. It does not modify
// registered.
func Dedupe(candidate string, registered map[string]struct{}) string {
	return dedupe(candidate, func(name string) bool {
		_, ok := registered[name]
		return ok
	})
}

func dedupe(candidate string, taken func(string) bool) string {
	if !taken(candidate) {
		return candidate
	}
	for n := 1; ; n++ {
		name := candidate + "_" + strconv.Itoa(n)
		if !taken(name) {
			return name
		}
	}
}

// mnemonicSet assigns unique curve mnemonics in file order. Names that
// appear literally anywhere in the curve section are reserved, so a
// generated suffix never steals a name a later curve declares itself.
type mnemonicSet struct {
	assigned map[string]struct{}
	reserved map[string]struct{}
}

func newMnemonicSet(literal []string) *mnemonicSet {
	s := &mnemonicSet{
		assigned: make(map[string]struct{}, len(literal)),
		reserved: make(map[string]struct{}, len(literal)),
	}
	for _, name := range literal {
		s.reserved[name] = struct{}{}
	}
	return s
}

func (s *mnemonicSet) add(candidate string) string {
	name := candidate
	if _, dup := s.assigned[candidate]; dup {
		name = dedupe(candidate, func(n string) bool {
			_, a := s.assigned[n]
			_, r := s.reserved[n]
			return a || r
		})
	}
	s.assigned[name] = struct{}{}
	return name
}
