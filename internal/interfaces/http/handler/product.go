package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/shopora/backend/internal/application/catalog"
	"github.com/shopora/backend/internal/interfaces/http/dto"
)

// ProductHandler handles product browsing and admin catalog management
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	imageService   *catalogapp.ImageService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService, imageService *catalogapp.ImageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		imageService:   imageService,
	}
}

// RegisterRoutes registers public product routes on the API group
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/featured", h.ListFeatured)
		products.GET("/:slug", h.GetBySlug)
	}
}

// RegisterAdminRoutes registers admin catalog routes on the admin group
func (h *ProductHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.Create)
		products.GET("/:id", h.Get)
		products.PUT("/:id", h.Update)
		products.DELETE("/:id", h.Delete)
		products.PUT("/:id/status", h.SetStatus)
		products.POST("/:id/variants", h.AddVariant)
		products.DELETE("/:id/variants/:variantId", h.RemoveVariant)
		products.POST("/:id/images", h.PrepareImageUpload)
	}
}

// List godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Search keyword"
// @Param        category_id query string false "Category filter"
// @Param        featured query bool false "Featured filter"
// @Success      200 {object} dto.Response{data=[]ProductResponse}
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}
	listReq.Normalize()

	input := catalogapp.ListProductsInput{
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		Search:   listReq.Search,
		OrderBy:  listReq.OrderBy,
		OrderDir: listReq.OrderDir,
		Status:   c.Query("status"),
	}

	if categoryID := c.Query("category_id"); categoryID != "" {
		id, err := parseUUIDPtr(&categoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID")
			return
		}
		input.CategoryID = id
	}
	if featuredStr := c.Query("featured"); featuredStr != "" {
		featured, err := strconv.ParseBool(featuredStr)
		if err != nil {
			h.BadRequest(c, "Invalid featured filter")
			return
		}
		input.Featured = &featured
	}

	result, err := h.productService.List(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, toProductResponses(result.Products), result.Total, result.Page, result.PageSize)
}

// ListFeatured godoc
// @Summary      List featured products
// @Tags         products
// @Produce      json
// @Param        limit query int false "Max results" default(10)
// @Success      200 {object} dto.Response{data=[]ProductResponse}
// @Router       /products/featured [get]
func (h *ProductHandler) ListFeatured(c *gin.Context) {
	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 50 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	products, err := h.productService.ListFeatured(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProductResponses(products))
}

// GetBySlug godoc
// @Summary      Get a product by slug
// @Tags         products
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} dto.Response{data=ProductResponse}
// @Failure      404 {object} dto.Response
// @Router       /products/{slug} [get]
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	product, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProductResponse(*product))
}

// Get godoc
// @Summary      Get a product by ID
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      200 {object} dto.Response{data=ProductResponse}
// @Router       /admin/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProductResponse(*product))
}

// Create godoc
// @Summary      Create a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateProductRequest true "Product data"
// @Success      201 {object} dto.Response{data=ProductResponse}
// @Router       /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid product data: "+err.Error())
		return
	}

	input, err := h.createInput(req)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toProductResponse(*product))
}

// Update godoc
// @Summary      Update a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Param        request body UpdateProductRequest true "Product data"
// @Success      200 {object} dto.Response{data=ProductResponse}
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid product data: "+err.Error())
		return
	}

	originalPrice, err := parseDecimal(req.OriginalPrice)
	if err != nil {
		h.BadRequest(c, "Invalid original price")
		return
	}
	salePrice, err := parseDecimalPtr(req.SalePrice)
	if err != nil {
		h.BadRequest(c, "Invalid sale price")
		return
	}
	categoryID, err := parseUUIDPtr(req.CategoryID)
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	product, err := h.productService.Update(c.Request.Context(), catalogapp.UpdateProductInput{
		ProductID:     id,
		Name:          req.Name,
		Description:   req.Description,
		Brand:         req.Brand,
		OriginalPrice: originalPrice,
		SalePrice:     salePrice,
		CategoryID:    categoryID,
		Images:        req.Images,
		Tags:          req.Tags,
		Featured:      req.Featured,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProductResponse(*product))
}

// Delete godoc
// @Summary      Delete a product
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      204
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SetStatus godoc
// @Summary      Change a product's status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Param        request body SetProductStatusRequest true "New status"
// @Success      200 {object} dto.Response{data=ProductResponse}
// @Router       /admin/products/{id}/status [put]
func (h *ProductHandler) SetStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req SetProductStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid status: "+err.Error())
		return
	}

	product, err := h.productService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProductResponse(*product))
}

// AddVariant godoc
// @Summary      Add a variant to a product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Param        request body CreateVariantRequest true "Variant data"
// @Success      200 {object} dto.Response{data=ProductResponse}
// @Router       /admin/products/{id}/variants [post]
func (h *ProductHandler) AddVariant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req CreateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid variant data: "+err.Error())
		return
	}

	priceOverride, err := parseDecimalPtr(req.PriceOverride)
	if err != nil {
		h.BadRequest(c, "Invalid price override")
		return
	}

	product, err := h.productService.AddVariant(c.Request.Context(), id, catalogapp.CreateVariantInput{
		SKU:           req.SKU,
		Color:         req.Color,
		Size:          req.Size,
		Stock:         req.Stock,
		PriceOverride: priceOverride,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProductResponse(*product))
}

// RemoveVariant godoc
// @Summary      Remove a variant from a product
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Param        variantId path string true "Variant ID"
// @Success      204
// @Router       /admin/products/{id}/variants/{variantId} [delete]
func (h *ProductHandler) RemoveVariant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	variantID, ok := parseIDParam(c, "variantId")
	if !ok {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	if err := h.productService.RemoveVariant(c.Request.Context(), id, variantID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// PrepareImageUpload godoc
// @Summary      Prepare a product image upload
// @Description  Returns a presigned upload URL and the public URL the image
// @Description  will have once uploaded. Attach the public URL to the product
// @Description  via the update endpoint.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Param        request body PrepareImageUploadRequest true "File metadata"
// @Success      200 {object} dto.Response{data=ImageUploadResponse}
// @Router       /admin/products/{id}/images [post]
func (h *ProductHandler) PrepareImageUpload(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req PrepareImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid upload request: "+err.Error())
		return
	}

	// The product must exist before issuing an upload slot for it
	if _, err := h.productService.Get(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	ticket, err := h.imageService.PrepareUpload(c.Request.Context(), "products/"+id.String(), req.FileName, req.ContentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ImageUploadResponse{
		StorageKey: ticket.StorageKey,
		UploadURL:  ticket.UploadURL,
		PublicURL:  ticket.PublicURL,
		ExpiresAt:  ticket.ExpiresAt,
	})
}
