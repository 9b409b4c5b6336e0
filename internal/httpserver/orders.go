package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"biomed-backend/internal/domain"
	"biomed-backend/internal/gateway/stripe"
	"biomed-backend/internal/pricing"
	ordersvc "biomed-backend/internal/service/order"
)

type saveOrderRequest struct {
	SessionID string `json:"sessionId"`
}

type codOrderRequest struct {
	Items    []pricing.CartItem `json:"items"`
	Customer pricing.Customer   `json:"customer"`
}

func saveOrderHandler(svc OrderService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req saveOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if strings.TrimSpace(req.SessionID) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId required"})
			return
		}
		order, saved, err := svc.SavePaid(c.Request.Context(), req.SessionID)
		if err != nil {
			if errors.Is(err, ordersvc.ErrSessionNotPaid) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Session not paid"})
				return
			}
			logger.Printf("save order %s: %v", req.SessionID, err)
			var gwErr *stripe.Error
			if errors.As(err, &gwErr) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": gwErr.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order"})
			return
		}
		if !saved {
			c.JSON(http.StatusOK, gin.H{"order": order, "saved": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

func codOrderHandler(svc OrderService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req codOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		order, err := svc.PlaceCOD(c.Request.Context(), req.Items, req.Customer)
		if err != nil {
			if errors.Is(err, pricing.ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart items are required"})
				return
			}
			var missing *ordersvc.MissingFieldsError
			if errors.As(err, &missing) {
				c.JSON(http.StatusBadRequest, gin.H{"error": missing.Error()})
				return
			}
			if errors.Is(err, domain.ErrStoreUnavailable) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Orders temporarily unavailable"})
				return
			}
			logger.Printf("place cod order: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}
