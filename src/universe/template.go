package universe

import "sort"

// Template represent the seeding template which can be used to settle a new universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [x,y] coordinates
}

var templates = map[string]Template{
	"testSample1": {
		"testSample1",
		"the test sample with 3 stable patterns",
		[][]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 3}, {4, 2}, {4, 3}, {5, 3}},
	},
	"block":   {"block", "2x2 still life", [][]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}}},
	"blinker": {"blinker", "period 2 oscillator", [][]int{{1, 2}, {2, 2}, {3, 2}}},
	"glider":  {"glider", "the smallest spaceship", [][]int{{2, 1}, {3, 2}, {1, 3}, {2, 3}, {3, 3}}},
}

// LookupTemplate returns the built-in template by its name
func LookupTemplate(name string) (Template, bool) {
	t, ok := templates[name]
	return t, ok
}

// TemplateHelp lists the built-in templates as "name (descr)" in alphabetical order
func TemplateHelp() []string {
	names := TemplateNames()
	help := make([]string, 0, len(names))
	for _, name := range names {
		help = append(help, name+" ("+templates[name].Descr+")")
	}
	return help
}

// TemplateNames lists the built-in templates in alphabetical order
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for k := range templates {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// settle places live cells at the template coordinates, skipping the ones outside the grid
func (t *Template) settle(g Grid) {
	for _, v := range t.Coordinates {
		if len(v) < 2 || !g.Contains(v[1], v[0]) {
			continue
		}
		g.cells[g.Index(v[1], v[0])] = Alive
	}
}
