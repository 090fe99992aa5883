package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"paymux/internal/domain/payment"
	"paymux/internal/tenant"
	"paymux/pkg/metrics"
)

type PaymentHandler struct {
	service *payment.PaymentService
}

func NewPaymentHandler(s *payment.PaymentService) PaymentHandler {
	return PaymentHandler{service: s}
}

// Init opens a Webpay transaction for the tenant resolved from the request
// origin. Server-to-server callers name the tenant in the payload instead.
func (h *PaymentHandler) Init(c *gin.Context) {
	var req payment.InitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "details": err.Error()})
		return
	}

	res, err := h.service.InitPayment(c.Request.Context(), ResolvedTenant(c), req)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		} else if errors.Is(err, payment.ErrTenantUnresolved) || errors.Is(err, tenant.ErrTenantDisabled) {
			c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
		} else if errors.Is(err, tenant.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		} else if errors.Is(err, tenant.ErrNoTenantsConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	metrics.PaymentInitsTotal.WithLabelValues(res.TenantID).Inc()
	c.JSON(http.StatusOK, res)
}

// Commit handles the return from the Webpay form. The buyer arrives by POST
// and is redirected to the storefront; GET answers JSON so storefronts can
// poll the outcome.
func (h *PaymentHandler) Commit(c *gin.Context) {
	var cb payment.CommitCallback
	if err := c.ShouldBind(&cb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid callback parameters"})
		return
	}

	outcome, err := h.service.FinalizeCommit(c.Request.Context(), cb)
	if err != nil {
		if errors.Is(err, payment.ErrCallbackUnresolved) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	metrics.PaymentCommitsTotal.WithLabelValues(outcome.TenantID, outcome.Status).Inc()

	if c.Request.Method == http.MethodPost {
		c.Redirect(http.StatusSeeOther, outcome.RedirectURL)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

func (h *PaymentHandler) Filter(c *gin.Context) {
	filter, err := h.createFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.service.GetPayments(c, *filter)
	if err != nil {
		if errors.Is(err, payment.ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) Get(c *gin.Context) {
	buyOrder := c.Param("buy_order")
	if buyOrder == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing buy_order"})
		return
	}

	res, err := h.service.GetPayment(c, buyOrder)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

// LiveStatus asks Webpay directly instead of reading the journal.
func (h *PaymentHandler) LiveStatus(c *gin.Context) {
	buyOrder := c.Param("buy_order")
	if buyOrder == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing buy_order"})
		return
	}

	res, err := h.service.LiveStatus(c.Request.Context(), buyOrder)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) Events(c *gin.Context) {
	var query payment.PaymentEventQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	res, err := h.service.GetPaymentEvents(c, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

type searchParams struct {
	Text      string     `form:"q"`
	TenantIDs string     `form:"tenant_id"`
	Kinds     string     `form:"kind"`
	TimeFrom  *time.Time `form:"time_from"`
	TimeTo    *time.Time `form:"time_to"`
	Limit     int        `form:"limit"`
}

func (h *PaymentHandler) Search(c *gin.Context) {
	var params searchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := payment.SearchQuery{
		Text:      params.Text,
		TenantIDs: splitParam(params.TenantIDs),
		TimeFrom:  params.TimeFrom,
		TimeTo:    params.TimeTo,
		Limit:     params.Limit,
	}
	for _, k := range splitParam(params.Kinds) {
		query.Kinds = append(query.Kinds, payment.PaymentEventKind(k))
	}

	res, err := h.service.SearchEvents(c, query)
	if err != nil {
		if errors.Is(err, payment.ErrSearchUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

type paymentFilterParams struct {
	Statuses  string `form:"status"`
	TenantIDs string `form:"tenant_id"`
	BuyOrders string `form:"buy_order"`
	Limit     uint64 `form:"limit"`
	Offset    uint64 `form:"offset"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

func (h *PaymentHandler) createFilter(c *gin.Context) (*payment.PaymentsQuery, error) {
	var params paymentFilterParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	query := payment.PaymentsQuery{
		BuyOrders: splitParam(params.BuyOrders),
		TenantIDs: splitParam(params.TenantIDs),
		Limit:     params.Limit,
		Offset:    params.Offset,
		SortOrder: params.SortOrder,
	}
	for _, s := range splitParam(params.Statuses) {
		query.Statuses = append(query.Statuses, payment.Status(s))
	}

	return &query, nil
}

// splitParam turns a comma-separated query value into a slice, dropping
// empty entries.
func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}

	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}

	return out
}
