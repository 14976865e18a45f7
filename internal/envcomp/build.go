package envcomp

// Variable is one composed environment variable.
type Variable struct {
	Name  string
	Value string
}

// Layout describes where each variable's candidate fragments come from.
type Layout struct {
	PluginVar   string
	ResourceVar string

	// PluginDirs are fixed local directories (the plugin build dir). They may
	// not exist yet; composition never checks the filesystem for them.
	PluginDirs []string
	// ScanRoot is an install prefix whose lib subdirectories are discovered
	// at composition time.
	ScanRoot string

	ResourceDirs []string
	PathDirs     []string
}

// Build composes the variable set for the layout. Getenv supplies the prior
// value of each variable; pass os.Getenv outside tests.
func Build(layout Layout, getenv func(string) string) []Variable {
	pluginFragments := make([]string, 0, len(layout.PluginDirs)+4)
	pluginFragments = append(pluginFragments, layout.PluginDirs...)
	pluginFragments = append(pluginFragments, ScanLibDirs(layout.ScanRoot)...)

	vars := []Variable{
		{Name: layout.PluginVar, Value: Merge(getenv(layout.PluginVar), pluginFragments...)},
		{Name: layout.ResourceVar, Value: Merge(getenv(layout.ResourceVar), layout.ResourceDirs...)},
	}
	if len(layout.PathDirs) > 0 {
		vars = append(vars, Variable{Name: "PATH", Value: Merge(getenv("PATH"), layout.PathDirs...)})
	}
	return vars
}

// Env renders the variables as KEY=VALUE pairs for process launch.
func Env(vars []Variable) []string {
	out := make([]string, 0, len(vars))
	for _, v := range vars {
		out = append(out, v.Name+"="+v.Value)
	}
	return out
}
