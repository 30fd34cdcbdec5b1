package handlers

import (
	"net/http"

	"blog-platform-api/helper"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
)

type GraphQLHandler struct {
	schema graphql.Schema
	Helper *helper.HTTPHelper
}

func NewGraphQLHandler(schema graphql.Schema, h *helper.HTTPHelper) *GraphQLHandler {
	return &GraphQLHandler{schema: schema, Helper: h}
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handle executes a single GraphQL request. Resolver failures ride back in the
// standard errors array with extensions.code set by the tagged error types;
// only an unreadable request body produces a non-200 response.
func (h *GraphQLHandler) Handle(c *gin.Context) {
	var req graphqlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "invalid request body")
		return
	}
	if req.Query == "" {
		h.Helper.SendBadRequest(c, "query is required")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.Request.Context(),
	})

	c.JSON(http.StatusOK, result)
}
