package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/product-service/internal/model"
	"github.com/iyhunko/product-service/internal/service"
)

// ProductController handles HTTP requests for product operations.
type ProductController struct {
	productService *service.ProductService
	logger         *slog.Logger
}

// NewProductController creates a new ProductController with the given product service.
func NewProductController(productService *service.ProductService, logger *slog.Logger) *ProductController {
	return &ProductController{
		productService: productService,
		logger:         logger,
	}
}

// ProductRequest represents the request body for creating or updating a product.
// Any id sent by the client is ignored. Out of range prices fail binding.
type ProductRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	SkuCode     string      `json:"skuCode"`
	Price       model.Price `json:"price"`
}

// ProductResponse represents the response body for a product.
type ProductResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	SkuCode     string      `json:"skuCode"`
	Price       model.Price `json:"price"`
}

// CreateProduct handles the HTTP POST request for creating a new product.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createdProduct, err := pc.productService.CreateProduct(c.Request.Context(), service.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		SkuCode:     req.SkuCode,
		Price:       req.Price.Decimal,
	})
	if err != nil {
		pc.logger.ErrorContext(c.Request.Context(), "failed to create product", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(createdProduct))
}

// ListProducts handles the HTTP GET request for listing all products.
func (pc *ProductController) ListProducts(c *gin.Context) {
	products, err := pc.productService.ListProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	productResponses := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		productResponses = append(productResponses, toProductResponse(product))
	}

	c.JSON(http.StatusOK, productResponses)
}

// UpdateProduct handles the HTTP PUT request replacing the fields of a product by ID.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updatedProduct, err := pc.productService.UpdateProduct(c.Request.Context(), c.Param("id"), service.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
		SkuCode:     req.SkuCode,
		Price:       req.Price.Decimal,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		pc.logger.ErrorContext(c.Request.Context(), "failed to update product", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}

	c.JSON(http.StatusOK, toProductResponse(updatedProduct))
}

// DeleteProduct handles the HTTP DELETE request for deleting a product by ID.
// Both outcomes are reported without a body.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	deleted, err := pc.productService.DeleteProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		pc.logger.ErrorContext(c.Request.Context(), "failed to delete product", slog.Any("err", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}

	if !deleted {
		c.Status(http.StatusNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func toProductResponse(product *model.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		SkuCode:     product.SkuCode,
		Price:       model.NewPrice(product.Price),
	}
}
