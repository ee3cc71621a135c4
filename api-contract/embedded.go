package apicontract

import _ "embed"

//go:embed schema.graphql
var schema string

// GetSchema returns the embedded GraphQL schema definition.
func GetSchema() string {
	return schema
}
