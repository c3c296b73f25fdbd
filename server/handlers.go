package server

import (
	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/unimarket/unimarket/server/graphql"
	"github.com/unimarket/unimarket/server/resolver"
	"github.com/unimarket/unimarket/utils"
)

// GraphqlHandler is the universal handler for all GraphQL operations
// issued from clients, bound to a POST method.
func GraphqlHandler(root *resolver.RootResolver) gin.HandlerFunc {
	schemaString := graphql.GetGQLSchema()
	h := &relay.Handler{
		Schema: utils.ParseGraphQLSchema(schemaString, root),
	}

	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
