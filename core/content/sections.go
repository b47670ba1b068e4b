package content

// Section identifies one panel of the deck, in display order.
type Section struct {
	ID    string
	Label string
}

// SectionMachines is the id of the flight timeline panel.
const SectionMachines = "machines"

// Sections lists the deck panels left to right.
var Sections = []Section{
	{ID: "home", Label: "Home"},
	{ID: "about", Label: "About"},
	{ID: "work", Label: "Work"},
	{ID: SectionMachines, Label: "Timeline"},
	{ID: "projects", Label: "Projects"},
	{ID: "skills", Label: "Skills"},
	{ID: "cv", Label: "CV"},
	{ID: "honors", Label: "Honors"},
	{ID: "contact", Label: "Links"},
}

// SectionIndex returns the position of id in Sections, or -1.
func SectionIndex(id string) int {
	for i, s := range Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}
