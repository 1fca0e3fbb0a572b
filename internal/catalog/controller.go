package catalog

import (
	"net/http"

	"stagepass/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// GetProducts handles GET /api/v1/products
func (c *Controller) GetProducts(ctx *gin.Context) {
	products, err := c.service.GetProducts(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Products retrieved successfully", products, nil)
}

// GetProduct handles GET /api/v1/products/:id
func (c *Controller) GetProduct(ctx *gin.Context) {
	product, err := c.service.GetProduct(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, err)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Product retrieved successfully", product, nil)
}

// SetupCatalogRoutes configures all catalog routes
func SetupCatalogRoutes(rg *gin.RouterGroup, controller *Controller) {
	products := rg.Group("/products")
	{
		products.GET("", controller.GetProducts)    // GET /api/v1/products
		products.GET("/:id", controller.GetProduct) // GET /api/v1/products/:id
	}
}
