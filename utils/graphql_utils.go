package utils

import (
	graphql "github.com/graph-gophers/graphql-go"
)

// ParseGraphQLSchema parses the schema string against the root resolver,
// panicking on mismatch. A schema/resolver mismatch is a programming
// error that should fail at startup, not at query time.
func ParseGraphQLSchema(schema string, resolver interface{}) *graphql.Schema {
	return graphql.MustParseSchema(schema, resolver)
}
