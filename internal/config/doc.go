// Package config loads declarative binding documents.
//
// A document declares a tree of nodes, the event bindings on them and
// optional overrides for the key alias and keyCode tables. Documents are
// written in TOML or YAML; the format is picked from the file extension.
//
//	[keys.aliases]
//	quit = ["q", "escape"]
//
//	[[nodes]]
//	id = "editor"
//	width = 80
//	height = 20
//	focus = true
//
//	[[bindings]]
//	node = "editor"
//	event = "keydown"
//	handler = "save"
//	modifiers = ["ctrl", "exact", "s", "prevent"]
//
// Nodes without a parent hang off the implicit "root" node, and a binding
// without a node is bound on the root.
//
// The configuration path can also be supplied through the VBIND_CONFIG
// environment variable, and a Watcher reloads a document when its file
// changes on disk.
package config
