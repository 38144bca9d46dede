package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E039)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Lifecycle callback registered outside component context",
		Detail:   "Runtime.OnMount and Runtime.OnUnmount attach to the render being materialized or to the component scope opened by Runtime.Func. Neither was active.",
		DocURL:   "https://feather.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryRuntime,
		Message:  "Template arity mismatch",
		Detail:   "A template needs exactly one more literal segment than interpolated values.",
		DocURL:   "https://feather.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryRuntime,
		Message:  "Template segment is not a string",
		Detail:   "HTML alternates literal segments and values; every even position must be a string.",
		DocURL:   "https://feather.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryRuntime,
		Message:  "Failed to parse render markup",
		Detail:   "The serialized HTML of a render could not be parsed into a fragment.",
		DocURL:   "https://feather.dev/docs/errors/E004",
	},

	// ============================================
	// Hydration Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryHydration,
		Message:  "Render has no client fragment",
		Detail:   "Hydration needs a materialized fragment. Renders built by a server-mode runtime (no Document) never have one.",
		DocURL:   "https://feather.dev/docs/errors/E040",
	},
	"E041": {
		Category: CategoryHydration,
		Message:  "Dangling placeholder",
		Detail:   "An element id uses the reserved placeholder prefix but no pending nested render is registered under it. Either markup reused the reserved prefix or the nested render was already spliced elsewhere.",
		DocURL:   "https://feather.dev/docs/errors/E041",
	},
	"E042": {
		Category: CategoryHydration,
		Message:  "Hydration target is not attached to the document",
		Detail:   "The target node must be part of the runtime's document so mutations can be observed.",
		DocURL:   "https://feather.dev/docs/errors/E042",
	},
	"E043": {
		Category: CategoryHydration,
		Message:  "Runtime has no document",
		Detail:   "Observers watch a document. A server-mode runtime (no Document) has nothing to observe.",
		DocURL:   "https://feather.dev/docs/errors/E043",
	},

	// ============================================
	// Server Errors (E080-E099)
	// ============================================

	"E080": {
		Category: CategoryServer,
		Message:  "Page render failed",
		Detail:   "A page function returned an error instead of a render.",
		DocURL:   "https://feather.dev/docs/errors/E080",
	},
	"E081": {
		Category: CategoryServer,
		Message:  "Server failed",
		Detail:   "The HTTP server stopped with an error.",
		DocURL:   "https://feather.dev/docs/errors/E081",
	},

	// ============================================
	// Export Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryExport,
		Message:  "Nothing to export",
		Detail:   "The export was started without any pages.",
		DocURL:   "https://feather.dev/docs/errors/E100",
	},
	"E101": {
		Category: CategoryExport,
		Message:  "Export write failed",
		Detail:   "A rendered page could not be written to the export destination.",
		DocURL:   "https://feather.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryExport,
		Message:  "Invalid export path",
		Detail:   "Page paths must be absolute URL paths such as \"/\" or \"/about\".",
		DocURL:   "https://feather.dev/docs/errors/E102",
	},

	// ============================================
	// Config Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration file could not be read or parsed.",
		DocURL:   "https://feather.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Configuration not found",
		Detail:   "Neither feather.json nor feather.toml exists in the project directory.",
		DocURL:   "https://feather.dev/docs/errors/E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Unsupported configuration format",
		Detail:   "Configuration files must end in .json or .toml.",
		DocURL:   "https://feather.dev/docs/errors/E122",
	},
	"E123": {
		Category: CategoryConfig,
		Message:  "Configuration value out of range",
		Detail:   "A configuration value failed validation.",
		DocURL:   "https://feather.dev/docs/errors/E123",
	},
	"E124": {
		Category: CategoryConfig,
		Message:  "Invalid asset manifest",
		Detail:   "The asset manifest must be a JSON object mapping source names to fingerprinted names.",
		DocURL:   "https://feather.dev/docs/errors/E124",
	},

	// ============================================
	// CLI Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryCLI,
		Message:  "Unknown page",
		Detail:   "The requested page is not registered by the application.",
		DocURL:   "https://feather.dev/docs/errors/E140",
	},
}
