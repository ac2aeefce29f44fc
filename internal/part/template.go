package part

// Template defines preset attribute defaults for a newly added part.
type Template struct {
	Name    string `json:"name"`
	Finish  string `json:"finish"`
	Color   string `json:"color"`
	Texture string `json:"texture"`
}

// BuiltinTemplates returns the standard part templates offered in the
// annotation panel. Positions are not part of a template; new parts always
// start at the container center.
func BuiltinTemplates() []Template {
	return []Template{
		{Name: "Hardware", Finish: "Polished", Color: "#c0c0c0", Texture: "Metal"},
		{Name: "Upholstery", Finish: "Matte", Color: "#8b5a2b", Texture: "Fabric"},
		{Name: "Frame", Finish: "Satin", Color: "#3b3b3b", Texture: "Wood"},
		{Name: "Glass", Finish: "Gloss", Color: "#d9f0f5", Texture: "Glass"},
		{Name: "Trim", Finish: "Brushed", Color: "#b08d57", Texture: "Metal"},
	}
}

// TemplateNames returns the display names of the given templates.
func TemplateNames(templates []Template) []string {
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	return names
}
