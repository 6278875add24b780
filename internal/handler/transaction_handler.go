package handler

import (
	"context"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/payment"
	"go-inventory-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	service  service.TransactionService
	payments payment.Provider
	log      *zap.Logger
}

func NewTransactionHandler(s service.TransactionService, p payment.Provider, log *zap.Logger) *TransactionHandler {
	return &TransactionHandler{service: s, payments: p, log: log}
}

// CreateTransaction persists the record and returns it immediately; payment
// processing runs as a deferred task keyed by the new id and total amount.
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var transaction model.Transaction
	if err := c.BodyParser(&transaction); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	created, err := h.service.Create(&transaction)
	if err != nil {
		return respondError(c, err)
	}

	go func() {
		// Outcome is logged by the payment service; a failure leaves the
		// transaction pending, reconciled only via the webhook.
		_, _ = h.payments.ProcessPayment(context.Background(), created.ID, created.TotalAmount)
	}()

	return c.JSON(created)
}

func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	skip, limit := pagination(c)
	transactions, err := h.service.GetAll(skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transactions)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.service.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transaction)
}

func (h *TransactionHandler) UpdateTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var update model.TransactionUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	transaction, err := h.service.Update(id, &update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(transaction)
}

// PaymentWebhook receives provider callbacks. Verification failures are
// rejected with 400; verified-but-unknown event kinds are acknowledged
// without touching any state.
func (h *TransactionHandler) PaymentWebhook(c *fiber.Ctx) error {
	event, err := h.payments.VerifyWebhook(c.Body(), c.Get("Stripe-Signature"))
	if err != nil {
		return respondError(c, err)
	}

	if event != nil {
		if _, err := h.service.UpdatePaymentStatus(event.TransactionID, event.Status, event.PaymentID); err != nil {
			h.log.Warn("webhook status update failed",
				zap.String("transaction_id", event.TransactionID.String()),
				zap.Error(err))
		}
	}

	return c.JSON(fiber.Map{"status": "success"})
}
