// Package shaders keeps the merged shader tree up to date from its
// upstream sources, either by syncing git clones or by downloading
// versioned collection archives.
package shaders

// Source describes one external shader repository. Essential sources merge
// directly into the shared Merged/Shaders and Merged/Textures trees;
// non-essential ones merge into a name-scoped Shaders subdirectory so
// optional packs cannot collide with core shaders.
type Source struct {
	Name      string
	URL       string
	Branch    string
	Essential bool
}

// Sources returns the compiled-in shader source table. The slice is
// rebuilt on every call so callers cannot mutate the table for others.
func Sources() []Source {
	return []Source{
		{
			Name:      "reshade-shaders",
			URL:       "https://github.com/crosire/reshade-shaders",
			Branch:    "slim",
			Essential: true,
		},
		{
			Name: "SweetFX",
			URL:  "https://github.com/CeeJayDK/SweetFX",
		},
		{
			Name: "qUINT",
			URL:  "https://github.com/martymcmodding/qUINT",
		},
		{
			Name: "AstrayFX",
			URL:  "https://github.com/BlueSkyDefender/AstrayFX",
		},
		{
			Name: "prod80-Shaders",
			URL:  "https://github.com/prod80/prod80-ReShade-Repository",
		},
		{
			Name: "OtisFX",
			URL:  "https://github.com/FransBouma/OtisFX",
		},
	}
}
