package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	orderapp "github.com/shopora/backend/internal/application/order"
	"github.com/shopora/backend/internal/interfaces/http/dto"
)

// OrderHandler handles checkout, order history and admin order management
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// RegisterRoutes registers order routes on the API group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Checkout)
		orders.GET("", h.List)
		orders.GET("/:id", h.Get)
		orders.POST("/:id/cancel", h.Cancel)
	}
}

// RegisterAdminRoutes registers admin order routes on the admin group
func (h *OrderHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.AdminList)
		orders.PUT("/:id/status", h.UpdateStatus)
	}
}

// CheckoutRequest is the request body for converting the cart into an order
type CheckoutRequest struct {
	FullName   string `json:"fullName" binding:"required,max=200"`
	Line1      string `json:"line1" binding:"required,max=500"`
	Line2      string `json:"line2" binding:"omitempty,max=500"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"omitempty,max=100"`
	PostalCode string `json:"postalCode" binding:"required,max=20"`
	Country    string `json:"country" binding:"required,max=100"`
	Phone      string `json:"phone" binding:"omitempty,max=30"`
}

// UpdateOrderStatusRequest is the request body for an admin status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=paid shipped delivered"`
}

// OrderItemResponse is the order line representation in API responses
type OrderItemResponse struct {
	ID            string `json:"id"`
	ProductID     string `json:"productId"`
	VariantID     string `json:"variantId"`
	ProductName   string `json:"productName"`
	ProductSlug   string `json:"productSlug"`
	ImageURL      string `json:"imageUrl,omitempty"`
	Color         string `json:"color,omitempty"`
	Size          string `json:"size,omitempty"`
	Quantity      int    `json:"quantity"`
	Price         string `json:"price"`
	TotalPrice    string `json:"totalPrice"`
	IsGift        bool   `json:"isGift"`
	GiftMessage   string `json:"giftMessage,omitempty"`
	Customization string `json:"customization,omitempty"`
}

// OrderResponse is the order representation in API responses
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	UserID          string              `json:"userId"`
	Status          string              `json:"status"`
	Items           []OrderItemResponse `json:"items"`
	Subtotal        string              `json:"subtotal"`
	TaxAmount       string              `json:"taxAmount"`
	ShippingAmount  string              `json:"shippingAmount"`
	DiscountAmount  string              `json:"discountAmount"`
	Total           string              `json:"total"`
	Currency        string              `json:"currency"`
	CouponCode      string              `json:"couponCode,omitempty"`
	PaymentMethod   string              `json:"paymentMethod,omitempty"`
	ShippingMethod  string              `json:"shippingMethod,omitempty"`
	ShippingAddress AddressResponse     `json:"shippingAddress"`
	Notes           string              `json:"notes,omitempty"`
	PaidAt          *time.Time          `json:"paidAt,omitempty"`
	ShippedAt       *time.Time          `json:"shippedAt,omitempty"`
	DeliveredAt     *time.Time          `json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time          `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
}

func toOrderResponse(o *orderapp.OrderResult) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:            item.ID.String(),
			ProductID:     item.ProductID.String(),
			VariantID:     item.VariantID.String(),
			ProductName:   item.ProductName,
			ProductSlug:   item.ProductSlug,
			ImageURL:      item.ImageURL,
			Color:         item.Color,
			Size:          item.Size,
			Quantity:      item.Quantity,
			Price:         item.Price.String(),
			TotalPrice:    item.TotalPrice.String(),
			IsGift:        item.IsGift,
			GiftMessage:   item.GiftMessage,
			Customization: item.Customization,
		})
	}
	return OrderResponse{
		ID:             o.ID.String(),
		OrderNumber:    o.OrderNumber,
		UserID:         o.UserID.String(),
		Status:         o.Status,
		Items:          items,
		Subtotal:       o.Subtotal.String(),
		TaxAmount:      o.TaxAmount.String(),
		ShippingAmount: o.ShippingAmount.String(),
		DiscountAmount: o.DiscountAmount.String(),
		Total:          o.Total.String(),
		Currency:       o.Currency,
		CouponCode:     o.CouponCode,
		PaymentMethod:  o.PaymentMethod,
		ShippingMethod: o.ShippingMethod,
		ShippingAddress: AddressResponse{
			FullName:   o.ShippingAddress.FullName(),
			Line1:      o.ShippingAddress.Line1(),
			Line2:      o.ShippingAddress.Line2(),
			City:       o.ShippingAddress.City(),
			State:      o.ShippingAddress.State(),
			PostalCode: o.ShippingAddress.PostalCode(),
			Country:    o.ShippingAddress.Country(),
			Phone:      o.ShippingAddress.Phone(),
		},
		Notes:       o.Notes,
		PaidAt:      o.PaidAt,
		ShippedAt:   o.ShippedAt,
		DeliveredAt: o.DeliveredAt,
		CancelledAt: o.CancelledAt,
		CreatedAt:   o.CreatedAt,
	}
}

func toOrderResponses(orders []orderapp.OrderResult) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out
}

// Checkout godoc
// @Summary      Convert the active cart into an order
// @Description  Validates stock, snapshots prices, consumes the applied
// @Description  coupon and empties the cart in one transaction.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CheckoutRequest true "Shipping address"
// @Success      201 {object} dto.Response{data=OrderResponse}
// @Failure      422 {object} dto.Response
// @Router       /orders [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid shipping address: "+err.Error())
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), orderapp.CheckoutInput{
		UserID:     userID,
		FullName:   req.FullName,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Phone:      req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toOrderResponse(order))
}

// List godoc
// @Summary      List the authenticated user's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Status filter"
// @Success      200 {object} dto.Response{data=[]OrderResponse}
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}
	listReq.Normalize()

	result, err := h.orderService.List(c.Request.Context(), orderapp.ListOrdersInput{
		UserID:   &userID,
		Status:   c.Query("status"),
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, toOrderResponses(result.Orders), result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary      Get one of the authenticated user's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=OrderResponse}
// @Failure      404 {object} dto.Response
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOrderResponse(order))
}

// Cancel godoc
// @Summary      Cancel a pending order
// @Description  Restores the stock reserved by the order's lines. Only
// @Description  orders that have not shipped can be cancelled.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=OrderResponse}
// @Failure      422 {object} dto.Response
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOrderResponse(order))
}

// AdminList godoc
// @Summary      List all orders
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Status filter"
// @Success      200 {object} dto.Response{data=[]OrderResponse}
// @Router       /admin/orders [get]
func (h *OrderHandler) AdminList(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid list parameters: "+err.Error())
		return
	}
	listReq.Normalize()

	result, err := h.orderService.List(c.Request.Context(), orderapp.ListOrdersInput{
		Status:   c.Query("status"),
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, toOrderResponses(result.Orders), result.Total, result.Page, result.PageSize)
}

// UpdateStatus godoc
// @Summary      Change an order's status
// @Description  Status changes follow the order lifecycle, skipping states
// @Description  is rejected.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Order ID"
// @Param        request body UpdateOrderStatusRequest true "New status"
// @Success      200 {object} dto.Response{data=OrderResponse}
// @Failure      422 {object} dto.Response
// @Router       /admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid status: "+err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toOrderResponse(order))
}
