package viewmodel

// Snapshot is a View and Ordering backed by plain values. The UI takes one
// before handing state to a background refresh.
type Snapshot struct {
	Radios     map[string]string
	Checkboxes map[string]bool
	Filters    []FilterField
	League     string
	Order      []string
}

// NewSnapshot returns a snapshot whose options equal defaults and whose
// league scope is AllLeagues.
func NewSnapshot(d Defaults) *Snapshot {
	s := &Snapshot{
		Radios:     make(map[string]string, len(RadioOptions)),
		Checkboxes: make(map[string]bool, len(CheckboxOptions)),
		League:     AllLeagues,
	}
	for _, name := range RadioOptions {
		s.Radios[name] = d.Radio(name)
	}
	for _, name := range CheckboxOptions {
		s.Checkboxes[name] = d.Checkbox(name)
	}
	return s
}

// Capture copies the current state of any View and Ordering.
func Capture(v View, o Ordering) *Snapshot {
	s := &Snapshot{
		Radios:     make(map[string]string, len(RadioOptions)),
		Checkboxes: make(map[string]bool, len(CheckboxOptions)),
	}
	if v != nil {
		for _, name := range RadioOptions {
			s.Radios[name] = v.SelectedOption(name)
		}
		for _, name := range CheckboxOptions {
			s.Checkboxes[name] = v.IsChecked(name)
		}
		fields := v.FilterFields()
		if len(fields) > 0 {
			s.Filters = make([]FilterField, len(fields))
			copy(s.Filters, fields)
		}
		s.League = v.LeagueID()
	}
	if o != nil {
		s.Order = cloneStrings(o.OrderingParams())
	}
	return s
}

func (s *Snapshot) SelectedOption(name string) string {
	return s.Radios[name]
}

func (s *Snapshot) IsChecked(name string) bool {
	return s.Checkboxes[name]
}

func (s *Snapshot) FilterFields() []FilterField {
	return s.Filters
}

func (s *Snapshot) LeagueID() string {
	return s.League
}

func (s *Snapshot) OrderingParams() []string {
	return s.Order
}
