package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/warehouse/internal/adapters/http/handlers"
	"github.com/rafaelleal24/warehouse/internal/core/domain"
	"github.com/rafaelleal24/warehouse/internal/core/dto"
	"github.com/rafaelleal24/warehouse/internal/core/serviceerrors"
)

type ProductService interface {
	ListProducts(ctx context.Context, request *dto.ListProductsRequest) (*domain.ProductPage, error)
	GetByID(ctx context.Context, id domain.ID) (*domain.Product, error)
	CreateProduct(ctx context.Context, request *dto.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id domain.ID, request *dto.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id domain.ID) error
	DeleteProducts(ctx context.Context, request *dto.DeleteProductsRequest) error
}

type ProductController struct {
	productService ProductService
}

type ProductResponse struct {
	ID        string    `json:"id" example:"665f1c2e9b1d4a3f2c8e7b10"`
	Name      string    `json:"name" example:"Widget"`
	Quantity  int       `json:"quantity" example:"100"`
	Price     float64   `json:"price" example:"15.5"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ProductListResponse struct {
	TotalProducts int64             `json:"totalProducts" example:"42"`
	Page          int               `json:"page" example:"1"`
	Limit         int               `json:"limit" example:"10"`
	TotalPages    int64             `json:"totalPages" example:"5"`
	Data          []ProductResponse `json:"data"`
}

func NewProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:        string(product.ID),
		Name:      product.Name,
		Quantity:  product.Quantity,
		Price:     product.Price,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}

func NewProductListResponse(page *domain.ProductPage) ProductListResponse {
	data := make([]ProductResponse, len(page.Products))
	for i, product := range page.Products {
		data[i] = NewProductResponse(product)
	}
	return ProductListResponse{
		TotalProducts: page.TotalProducts,
		Page:          page.Page,
		Limit:         page.Limit,
		TotalPages:    page.TotalPages,
		Data:          data,
	}
}

func NewProductController(productService ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ListProducts godoc
// @Summary     List products
// @Description Returns a page of products, optionally filtered by name and price range
// @Tags        products
// @Produce     json
// @Param       page     query    int    false "Page number, from 1"
// @Param       limit    query    int    false "Page size"
// @Param       name     query    string false "Case-insensitive name fragment"
// @Param       minPrice query    number false "Inclusive lower price bound"
// @Param       maxPrice query    number false "Inclusive upper price bound"
// @Success     200      {object} ProductListResponse
// @Failure     500      {object} handlers.ErrorResponse
// @Router      /products [get]
func (pc *ProductController) ListProducts(c *gin.Context) {
	var request dto.ListProductsRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	page, err := pc.productService.ListProducts(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductListResponse(page))
}

// GetProduct godoc
// @Summary     Get a product
// @Tags        products
// @Produce     json
// @Param       id  path     string true "Product ID"
// @Success     200 {object} ProductResponse
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /products/{id} [get]
func (pc *ProductController) GetProduct(c *gin.Context) {
	product, err := pc.productService.GetByID(c.Request.Context(), domain.ID(c.Param("id")))
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponse(product))
}

// CreateProduct godoc
// @Summary     Create a product
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body     dto.CreateProductRequest true "Product data"
// @Success     201     {object} ProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     401     {object} handlers.ErrorResponse
// @Failure     403     {object} handlers.ErrorResponse
// @Router      /products [post]
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var request dto.CreateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	product, err := pc.productService.CreateProduct(c.Request.Context(), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewProductResponse(product))
}

// UpdateProduct godoc
// @Summary     Update a product
// @Description Replaces any of name, quantity and price; absent fields are kept
// @Tags        products
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path     string                   true "Product ID"
// @Param       request body     dto.UpdateProductRequest true "Fields to change"
// @Success     200     {object} ProductResponse
// @Failure     400     {object} handlers.ErrorResponse
// @Failure     404     {object} handlers.ErrorResponse
// @Router      /products/{id} [put]
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var request dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handlers.HandleError(c, serviceerrors.NewInvalidRequestError(err.Error()))
		return
	}
	product, err := pc.productService.UpdateProduct(c.Request.Context(), domain.ID(c.Param("id")), &request)
	if err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProductResponse(product))
}

// DeleteProduct godoc
// @Summary     Delete a product
// @Tags        products
// @Security    BearerAuth
// @Param       id  path string true "Product ID"
// @Success     204
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /products/{id} [delete]
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	if err := pc.productService.DeleteProduct(c.Request.Context(), domain.ID(c.Param("id"))); err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteProducts godoc
// @Summary     Delete several products
// @Description Succeeds when at least one of the listed products existed
// @Tags        products
// @Accept      json
// @Security    BearerAuth
// @Param       request body dto.DeleteProductsRequest true "IDs to delete"
// @Success     204
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /products [delete]
func (pc *ProductController) DeleteProducts(c *gin.Context) {
	var request dto.DeleteProductsRequest
	// A missing or unreadable body leaves IDs empty, which the service rejects.
	_ = c.ShouldBindJSON(&request)

	if err := pc.productService.DeleteProducts(c.Request.Context(), &request); err != nil {
		handlers.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
