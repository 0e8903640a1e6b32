package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"beerapp/server/internal/services"
)

// CatalogController отдает каталог товаров фронтенду
type CatalogController struct {
	catalog *services.CatalogService
}

// NewCatalogController создает новый контроллер каталога
func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// GetProducts возвращает все товары каталога
// GET /api/v1/products
func (cc *CatalogController) GetProducts(c *gin.Context) {
	products, err := cc.catalog.GetProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка чтения каталога"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}
