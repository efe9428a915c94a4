package dreamlog

// flagNames maps the dream CLI's short flags to the names used in JSON output.
// It is never modified after initialization.
var flagNames = map[string]string{
	"s": "steps",
	"W": "width",
	"H": "height",
	"C": "cfg_scale",
	"A": "sampler",
	"F": "full_precision",
	"S": "seed",
	"G": "gfpgan_strength",
	"I": "init_img",
}

// LongName returns the output key for a flag letter. Unknown letters are
// returned unchanged.
func LongName(letter string) string {
	if name, ok := flagNames[letter]; ok {
		return name
	}
	return letter
}

// FlagNames returns a copy of the flag name table.
func FlagNames() map[string]string {
	names := make(map[string]string, len(flagNames))
	for k, v := range flagNames {
		names[k] = v
	}
	return names
}
