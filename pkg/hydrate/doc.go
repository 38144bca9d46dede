// Package hydrate connects document mutations to render lifecycles.
//
// An Observer watches a subtree of a dom.Document. For every removed node
// and each of its descendants it calls the lifecycle handle's Unmount;
// for every added node and its descendants it calls Mount. Nodes without
// a handle are skipped.
//
// Hydrate is the entry point for a top-level render:
//
//	doc := dom.NewDocument()
//	rt := render.NewRuntime(render.Options{Document: doc})
//	app := rt.HTML(`<main>`, todoList, `</main>`)
//	obs, err := hydrate.Hydrate(app, nil)
//
// The initial insertion goes through the same mutation path as every
// later one, so the first mount is not a special case.
package hydrate
