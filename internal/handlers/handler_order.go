package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/synchroai/synchro_backend/internal/core/domain"
	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
	"github.com/synchroai/synchro_backend/internal/dto"
)

// maxProofSize caps payment proof uploads at 5 MiB.
const maxProofSize = 5 << 20

// orderHandler handles HTTP requests for order records.
type orderHandler struct {
	orderSvc portssvc.OrderSvcFacade
}

func newOrderHandler(os portssvc.OrderSvcFacade) *orderHandler {
	return &orderHandler{orderSvc: os}
}

// registerOrderRoutes registers routes related to order records.
func registerOrderRoutes(rg *gin.RouterGroup, orderSvc portssvc.OrderSvcFacade) {
	h := newOrderHandler(orderSvc)

	services := rg.Group("/services/:id/orders")
	{
		services.POST("", h.createOrder)
		services.GET("", h.listOrders)
	}

	orders := rg.Group("/orders")
	{
		orders.POST("/:id/proof", h.uploadProof)
		orders.POST("/:id/verify", h.verifyOrder)
	}
}

// createOrder godoc
// @Summary Record a customer order
// @Description Records an order reported by the messaging channel against an
// order-bot catalog entry.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Catalog entry ID"
// @Param order body dto.CreateOrderRequest true "Order details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse "Entry is not an order bot"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /services/{id}/orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	order, err := h.orderSvc.CreateOrder(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// listOrders godoc
// @Summary List a service's orders
// @Description Returns the orders captured by an order-bot entry, newest
// first, optionally filtered by payment status.
// @Tags orders
// @Produce json
// @Param id path string true "Catalog entry ID"
// @Param status query string false "Filter: pending|confirmed|rejected"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /services/{id}/orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	orders, err := h.orderSvc.ListOrders(c.Request.Context(), c.Param("id"), userID, domain.OrderPaymentStatus(params.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListOrdersResponse(orders))
}

// uploadProof godoc
// @Summary Upload a payment proof
// @Description Stores a payment receipt image for a pending order and
// attaches its URL.
// @Tags orders
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Order ID"
// @Param proof formData file true "Receipt image"
// @Success 200 {object} dto.UploadProofResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Order already verified"
// @Security BearerAuth
// @Router /orders/{id}/proof [post]
func (h *orderHandler) uploadProof(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing proof file"})
		return
	}
	if fileHeader.Size > maxProofSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Proof file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unreadable proof file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxProofSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read proof file"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.orderSvc.UploadProof(c.Request.Context(), c.Param("id"), userID, data, contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UploadProofResponse{ProofURL: url})
}

// verifyOrder godoc
// @Summary Verify an order's payment
// @Description Moves a pending order to confirmed or rejected. Terminal
// orders are immutable.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param verify body dto.VerifyOrderRequest true "Verification decision"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Order already verified"
// @Security BearerAuth
// @Router /orders/{id}/verify [post]
func (h *orderHandler) verifyOrder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.VerifyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	order, err := h.orderSvc.VerifyOrder(c.Request.Context(), c.Param("id"), userID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
