package graph

import (
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
)

// NewHTTPHandler wraps the schema in a GraphQL-over-HTTP handler. GraphiQL is
// served on GET for interactive exploration.
func NewHTTPHandler(schema graphql.Schema) gin.HandlerFunc {
	h := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})
	return gin.WrapH(h)
}
