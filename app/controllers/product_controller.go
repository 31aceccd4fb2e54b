package controllers

import (
	"net/http"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/app/repositories"
	"github.com/tracechain/tracechain/app/services"
	appctx "github.com/tracechain/tracechain/pkg/ctx"
)

type ProductController struct {
	dir *repositories.Directory
	qr  *services.QRCodeService
}

func NewProductController(dir *repositories.Directory) *ProductController {
	return &ProductController{dir: dir, qr: services.NewQRCodeService(dir)}
}

// Index lists products, optionally narrowed by ?status=. An unknown or
// empty status value returns the full catalog.
func (c *ProductController) Index() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		status := models.Status(ctx.Query("status"))
		if !status.Valid() {
			ctx.Success(c.dir.Products(nil))
			return
		}
		ctx.Success(c.dir.ProductsByStatus(status))
	})
}

func (c *ProductController) Show() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		product, ok := c.dir.Product(ctx.Param("id"))
		if !ok {
			ctx.NotFound("Product not found")
			return
		}
		ctx.Success(product)
	})
}

// QRCode returns the scannable payload for a product. The SVG image is
// rendered in the background on first request; imageUrl stays empty until
// the render job has run.
func (c *ProductController) QRCode() http.HandlerFunc {
	return appctx.Wrap(func(ctx *appctx.Context) {
		payload, imageURL, ok := c.qr.PayloadFor(ctx.Param("id"))
		if !ok {
			ctx.NotFound("Product not found")
			return
		}
		ctx.Success(map[string]any{
			"payload":  payload,
			"imageUrl": imageURL,
		})
	})
}
