package controllers

import (
	"net/http"

	"github.com/graphql-go/graphql"

	appgraphql "github.com/tracechain/tracechain/app/graphql"
	"github.com/tracechain/tracechain/app/repositories"
	appctx "github.com/tracechain/tracechain/pkg/ctx"
)

type GraphQLController struct {
	schema graphql.Schema
}

func NewGraphQLController(dir *repositories.Directory) (*GraphQLController, error) {
	schema, err := appgraphql.NewSchema(dir)
	if err != nil {
		return nil, err
	}
	return &GraphQLController{schema: schema}, nil
}

type graphqlInput struct {
	Query     string         `json:"query" validate:"required"`
	Variables map[string]any `json:"variables"`
}

// Query executes one GraphQL request and returns the standard
// data/errors envelope.
func (c *GraphQLController) Query() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		var in graphqlInput
		if !ctx.BindJSON(&in) {
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         c.schema,
			RequestString:  in.Query,
			VariableValues: in.Variables,
			Context:        ctx.Context(),
		})
		ctx.JSON(http.StatusOK, result)
	})
}
