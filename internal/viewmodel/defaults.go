package viewmodel

// Defaults are the option values the server renders when no option is
// present in the URL. Only values that differ from these are sent.
type Defaults struct {
	Elements string
	Complete string
	Link     string
	Menus    string
	Index    bool
	Key      bool
}

func DefaultDefaults() Defaults {
	return Defaults{
		Elements: "rich",
		Complete: "shown",
		Link:     "internal",
		Menus:    "menus",
		Index:    false,
		Key:      false,
	}
}

// Radio returns the default for a radio option, or "" for unknown names.
func (d Defaults) Radio(name string) string {
	switch name {
	case OptElements:
		return d.Elements
	case OptComplete:
		return d.Complete
	case OptLink:
		return d.Link
	case OptMenus:
		return d.Menus
	}
	return ""
}

func (d Defaults) Checkbox(name string) bool {
	switch name {
	case OptIndex:
		return d.Index
	case OptKey:
		return d.Key
	}
	return false
}

// CheckboxTerm is the query term a checkbox contributes in the given state.
func CheckboxTerm(name string, checked bool) string {
	if checked {
		return name
	}
	return "no" + name
}
