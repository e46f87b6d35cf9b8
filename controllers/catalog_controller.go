package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"techstore/models"
	"techstore/services"
)

type CatalogController struct {
	Catalog *services.CatalogService
}

// @Summary Get all products
// @Description Get paginated list of products, optionally filtered by name
// @Tags Products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param search query string false "Search by product name"
// @Success 200 {object} models.PaginationResponse
// @Router /products [get]
func (ctrl *CatalogController) GetAllProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	search := strings.TrimSpace(c.Query("search"))

	resp, err := ctrl.Catalog.ListProducts(c.Request.Context(), page, limit, search)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response{data=models.Product}
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *CatalogController) GetProductByID(c *gin.Context) {
	product, err := ctrl.Catalog.GetProduct(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product retrieved", Data: product})
}

// @Summary Get product detail
// @Description Product with its specification sheet for the detail view
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Response{data=models.ProductDetail}
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id}/detail [get]
func (ctrl *CatalogController) GetProductDetail(c *gin.Context) {
	detail, err := ctrl.Catalog.GetProductDetail(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Product detail retrieved", Data: detail})
}
