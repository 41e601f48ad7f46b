// Package openapi describes the persisted display options of every registered
// abstract type as OpenAPI 3 component schemas and checks stored options
// against them. Types opt in by implementing OptionsSchemaProvider.
package openapi
