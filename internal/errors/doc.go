// Package errors provides structured, actionable error messages for Feather.
//
// Every error raised by the render engine, the hydration observer, the
// configuration loader and the CLI carries a stable code (e.g. "E040")
// that maps to:
//   - a category (runtime, hydration, config, export, cli)
//   - a short message and a longer explanation
//   - a documentation URL
//
// # Usage
//
//	err := errors.New("E040").
//	    WithDetail("render 12 was built by a server-mode runtime").
//	    WithSuggestion("Create the runtime with render.Options{Document: doc}")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E040: Render has no client fragment
//	//
//	//   render 12 was built by a server-mode runtime
//	//
//	//   Hint: Create the runtime with render.Options{Document: doc}
//	//
//	//   Learn more: https://feather.dev/docs/errors/E040
//
// Packages that expose sentinel errors wrap them in a coded error, so both
// errors.Is against the sentinel and errors.As against *FeatherError work.
package errors
