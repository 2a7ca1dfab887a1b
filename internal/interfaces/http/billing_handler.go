package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/application/payments"
	"github.com/jhoicas/eventos-api/internal/domain"
)

// BillingHandler maneja la conciliación de cuotas (plano del operador) y el
// estado de cuenta del tenant resuelto (plano del tenant).
type BillingHandler struct {
	apply     *payments.ApplyPaymentUseCase
	reverse   *payments.ReverseInstallmentUseCase
	list      *payments.ListInstallmentsUseCase
	statement *payments.StatementUseCase
}

// NewBillingHandler construye el handler inyectando los casos de uso.
func NewBillingHandler(
	apply *payments.ApplyPaymentUseCase,
	reverse *payments.ReverseInstallmentUseCase,
	list *payments.ListInstallmentsUseCase,
	statement *payments.StatementUseCase,
) *BillingHandler {
	return &BillingHandler{apply: apply, reverse: reverse, list: list, statement: statement}
}

// ApplyPayment godoc
// @Summary      Aplicar pago a una cuota (total o parcial)
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la cuota"
// @Param        body  body  dto.ApplyPaymentRequest  true  "Pago"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/installments/{id}/payments [post]
func (h *BillingHandler) ApplyPayment(c *fiber.Ctx) error {
	var in dto.ApplyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.apply.Apply(c.UserContext(), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInstallmentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "INSTALLMENT_NOT_FOUND", Message: "cuota no encontrada"})
		case errors.Is(err, domain.ErrAlreadyPaid):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "ALREADY_PAID", Message: "la cuota ya está pagada"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pago inválido: método requerido, monto en (0, monto de la cuota], y vencimiento nuevo si el pago es parcial"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ReversePayment godoc
// @Summary      Reversar el pago de una cuota
// @Tags         billing
// @Produce      json
// @Param        id   path  string  true  "ID de la cuota"
// @Success      200  {object}  dto.InstallmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/installments/{id}/reverse [post]
func (h *BillingHandler) ReversePayment(c *fiber.Ctx) error {
	out, err := h.reverse.Reverse(c.UserContext(), c.Params("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInstallmentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "INSTALLMENT_NOT_FOUND", Message: "cuota no encontrada"})
		case errors.Is(err, domain.ErrNotPaid):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NOT_PAID", Message: "la cuota no está pagada; nada que reversar"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListInstallments godoc
// @Summary      Estado de cuenta: cuotas del tenant resuelto en orden cronológico
// @Tags         billing
// @Produce      json
// @Success      200  {object}  dto.InstallmentListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/installments [get]
func (h *BillingHandler) ListInstallments(c *fiber.Ctx) error {
	out, err := h.list.List(c.UserContext(), CurrentTenant(c).ID)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Statement godoc
// @Summary      Estado de cuenta del tenant resuelto en PDF
// @Tags         billing
// @Produce      application/pdf
// @Success      200  {file}  file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/statement [get]
func (h *BillingHandler) Statement(c *fiber.Ctx) error {
	pdfBytes, err := h.statement.Generate(c.UserContext(), CurrentTenant(c).ID)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) || errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="estado-de-cuenta.pdf"`)
	return c.Send(pdfBytes)
}
