package errors

// Template defines a registered error type.
type Template struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]Template{
	// ============================================
	// Render Errors (W101-W199)
	// ============================================

	"W101": {
		Category:   CategoryRender,
		Message:    "The selector for the root node may not be changed",
		Suggestion: "Use Merge and add one extra level to the tree so the root stays the same.",
	},
	"W102": {
		Category:   CategoryRender,
		Message:    `"class" property may not be updated`,
		Suggestion: `Use the "classes" property for conditional css classes.`,
	},
	"W103": {
		Category:   CategoryRender,
		Message:    "Style values must be strings",
		Suggestion: `Pass a map[string]string as the "styles" property.`,
	},
	"W104": {
		Category:   CategoryRender,
		Message:    "Provide Transitions in the options to do animations",
		Suggestion: "Set Options.Transitions, or pass a function instead of an animation token.",
	},
	"W105": {
		Category:   CategoryRender,
		Message:    "Functions may not be updated on subsequent renders",
		Suggestion: "Declare event handler functions outside the render function so they keep their identity.",
	},
	"W106": {
		Category:   CategoryRender,
		Message:    "A child was added, but there is now more than one indistinguishable sibling",
		Suggestion: "Add unique key properties to make the siblings distinguishable.",
	},
	"W107": {
		Category:   CategoryRender,
		Message:    "A child was removed, but there were more than one indistinguishable siblings",
		Suggestion: "Add unique key properties to make the siblings distinguishable.",
	},
	"W108": {
		Category:   CategoryRender,
		Message:    "Render function was not found",
		Suggestion: "Detach only render functions that were registered with this projector.",
	},
	"W109": {
		Category:   CategoryRender,
		Message:    `Property "className" is not supported`,
		Suggestion: `Use "class" instead.`,
	},
	"W110": {
		Category:   CategoryRender,
		Message:    "Node was already rendered",
		Suggestion: "Build a fresh tree on every render; nodes may only be handed to the engine once.",
	},
	"W111": {
		Category:   CategoryRender,
		Message:    "Duplicate key in mapped sources",
		Suggestion: "Make the key function return a unique key per source item.",
	},
	"W112": {
		Category:   CategoryRender,
		Message:    "Hook property has an unsupported value type",
		Suggestion: "Use the hook function types declared in package vdom.",
	},

	// ============================================
	// Config Errors (W201-W299)
	// ============================================

	"W201": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration file",
		Suggestion: "Check widgetkit.json or widgetkit.yaml for syntax errors.",
	},
	"W202": {
		Category:   CategoryConfig,
		Message:    "Invalid configuration value",
		Suggestion: "Fix the named field or remove it to use the default.",
	},

	// ============================================
	// CLI Errors (W301-W399)
	// ============================================

	"W301": {
		Category:   CategoryCLI,
		Message:    "Publishing the snapshot failed",
		Suggestion: "Check the bucket name, region and AWS credentials.",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
