package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/makishop/storefront/internal/checkout"
	"github.com/makishop/storefront/internal/domain"
)

// CheckoutRunner is the slice of the orchestrator the handler needs.
type CheckoutRunner interface {
	Checkout(ctx context.Context, req checkout.Request) (*checkout.Result, error)
}

type CheckoutHandler struct {
	checkout CheckoutRunner
}

func NewCheckoutHandler(runner CheckoutRunner) *CheckoutHandler {
	return &CheckoutHandler{checkout: runner}
}

type CheckoutRequestDTO struct {
	TermsAccepted  bool   `json:"terms_accepted"`
	Email          string `json:"email"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	FirstNames     string `json:"first_names"`
	LastNames      string `json:"last_names"`
	Phone          string `json:"phone"`
	RecipientName  string `json:"recipient_name"`
	InvoiceType    string `json:"invoice_type"`
	InvoiceDetail  string `json:"invoice_detail"`
}

type CheckoutResponseDTO struct {
	AttemptID string         `json:"attempt_id"`
	BuyerID   int64          `json:"buyer_id"`
	Orders    []domain.Order `json:"orders"`
	Redirect  string         `json:"redirect"`
}

type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	result, err := h.checkout.Checkout(r.Context(), checkout.Request{
		TermsAccepted: req.TermsAccepted,
		Form:          req.toForm(),
	})
	if err != nil {
		h.respondCheckoutError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{
		AttemptID: result.AttemptID,
		BuyerID:   result.BuyerID,
		Orders:    result.Orders,
		Redirect:  "/admin/orders",
	})
}

func (h *CheckoutHandler) respondCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, checkout.ErrTermsNotAccepted):
		respondError(w, http.StatusBadRequest, "terms_not_accepted", "terms and conditions must be accepted")
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "your cart is empty")
	case errors.Is(err, checkout.ErrInvalidForm):
		var valErr *checkout.ValidationError
		fields := map[string]string{}
		if errors.As(err, &valErr) {
			fields = valErr.Fields
		}
		respondJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
			Error:  http.StatusText(http.StatusUnprocessableEntity),
			Code:   "invalid_form",
			Fields: fields,
		})
	default:
		// Backend details stay in the logs, the shopper gets a generic
		// retryable message
		log.Printf("checkout failed (request %s): %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusBadGateway, "checkout_failed", "could not place the order, try again")
	}
}

func (r CheckoutRequestDTO) toForm() domain.BuyerForm {
	documentType := domain.DocumentNationalID
	if r.DocumentType == string(domain.DocumentForeignID) {
		documentType = domain.DocumentForeignID
	}
	invoiceType := domain.InvoiceReceipt
	if r.InvoiceType == string(domain.InvoiceInvoice) {
		invoiceType = domain.InvoiceInvoice
	}
	invoiceDetail := domain.InvoiceSimple
	if r.InvoiceDetail == string(domain.InvoiceDetailed) {
		invoiceDetail = domain.InvoiceDetailed
	}

	return domain.BuyerForm{
		Email:          r.Email,
		DocumentType:   documentType,
		DocumentNumber: r.DocumentNumber,
		FirstNames:     r.FirstNames,
		LastNames:      r.LastNames,
		Phone:          r.Phone,
		RecipientName:  r.RecipientName,
		InvoiceType:    invoiceType,
		InvoiceDetail:  invoiceDetail,
	}
}
