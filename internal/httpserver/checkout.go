package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"biomed-backend/internal/gateway/stripe"
	"biomed-backend/internal/pricing"
	checkoutsvc "biomed-backend/internal/service/checkout"
)

type sessionResponse struct {
	ID            string            `json:"id"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	CustomerEmail string            `json:"customer_email"`
	Metadata      map[string]string `json:"metadata"`
}

func createCheckoutSessionHandler(svc CheckoutService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutsvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		result, err := svc.CreateSession(c.Request.Context(), in)
		if err != nil {
			if errors.Is(err, pricing.ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Cart items are required"})
				return
			}
			logger.Printf("create checkout session: %v", err)
			var gwErr *stripe.Error
			if errors.As(err, &gwErr) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": gwErr.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func getCheckoutSessionHandler(svc CheckoutService, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := svc.GetSession(c.Request.Context(), c.Param("sessionID"))
		if err != nil {
			logger.Printf("retrieve session %s: %v", c.Param("sessionID"), err)
			var gwErr *stripe.Error
			if errors.As(err, &gwErr) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": gwErr.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve session"})
			return
		}
		c.JSON(http.StatusOK, sessionResponse{
			ID:            session.ID,
			PaymentStatus: session.PaymentStatus,
			AmountTotal:   session.AmountTotal,
			CustomerEmail: session.CustomerEmail,
			Metadata:      session.Metadata,
		})
	}
}
