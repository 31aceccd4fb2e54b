// Package graphql defines the read-only query schema over the product
// directory and journey timelines.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/app/services"
	gql "github.com/tracechain/tracechain/pkg/graphql"
)

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":               &graphql.Field{Type: graphql.String},
		"name":             &graphql.Field{Type: graphql.String},
		"type":             &graphql.Field{Type: graphql.String},
		"variety":          &graphql.Field{Type: graphql.String},
		"farmerId":         &graphql.Field{Type: graphql.String},
		"farmerName":       &graphql.Field{Type: graphql.String},
		"origin":           &graphql.Field{Type: graphql.String},
		"quantity":         &graphql.Field{Type: graphql.Float},
		"unit":             &graphql.Field{Type: graphql.String},
		"qualityGrade":     &graphql.Field{Type: graphql.String},
		"organicCertified": &graphql.Field{Type: graphql.Boolean},
		"currentStatus":    &graphql.Field{Type: graphql.String},
		"currentLocation":  &graphql.Field{Type: graphql.String},
		"price":            &graphql.Field{Type: graphql.Float},
		"harvestDate": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				product, ok := p.Source.(models.Product)
				if !ok {
					return nil, nil
				}
				return product.HarvestDate.Display(), nil
			},
		},
	},
})

var timelineEntryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "TimelineEntry",
	Fields: graphql.Fields{
		"kind":        &graphql.Field{Type: graphql.String},
		"title":       &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"timestamp": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				entry, ok := p.Source.(services.TimelineEntry)
				if !ok {
					return nil, nil
				}
				return entry.Timestamp.Display(), nil
			},
		},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.String},
		"name":     &graphql.Field{Type: graphql.String},
		"role":     &graphql.Field{Type: graphql.String},
		"email":    &graphql.Field{Type: graphql.String},
		"location": &graphql.Field{Type: graphql.String},
		"company":  &graphql.Field{Type: graphql.String},
	},
})

// NewSchema builds the query schema backed by dir.
func NewSchema(dir *repositories.Directory) (graphql.Schema, error) {
	journeys := services.NewJourneyService(dir)

	root := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					product, ok := dir.Product(id)
					if !ok {
						return nil, nil
					}
					return product, nil
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					raw, _ := p.Args["status"].(string)
					status := models.Status(raw)
					if !status.Valid() {
						return dir.Products(nil), nil
					}
					return dir.ProductsByStatus(status), nil
				},
			},
			"journey": &graphql.Field{
				Type: graphql.NewList(timelineEntryType),
				Args: graphql.FieldConfigArgument{
					"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["productId"].(string)
					timeline, ok := journeys.Timeline(id)
					if !ok {
						return nil, nil
					}
					return timeline, nil
				},
			},
			"users": &graphql.Field{
				Type: graphql.NewList(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return dir.Users(), nil
				},
			},
		},
	})

	return gql.NewSchema(root)
}
