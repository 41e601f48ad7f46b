// Package form defines the declarative form schema abstract types hand to a
// form renderer: a set of named variables plus an ordered layout tree that
// binds those variables to widgets. Schemas are plain values, serialise to
// JSON/YAML, and can be validated before a renderer walks them. Variables of
// kind `custom` are opaque to the renderer; their static layout element names
// the external widget (component id) that owns the whole editing experience.
package form
