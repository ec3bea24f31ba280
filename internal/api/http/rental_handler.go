package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"locagest-backend/internal/metrics"
	"locagest-backend/internal/service"
)

type RentalHandler struct {
	rentals  service.RentalService
	receipts service.ReceiptService
}

func NewRentalHandler(rentals service.RentalService, receipts service.ReceiptService) *RentalHandler {
	return &RentalHandler{rentals: rentals, receipts: receipts}
}

func (h *RentalHandler) CreateRental(w http.ResponseWriter, r *http.Request) {
	var in service.CreateRentalInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rt, err := h.rentals.CreateRental(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rt)
}

func (h *RentalHandler) GetRental(w http.ResponseWriter, r *http.Request) {
	view, err := h.rentals.GetRental(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *RentalHandler) ListRentals(w http.ResponseWriter, r *http.Request) {
	views, err := h.rentals.ListRentals(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *RentalHandler) DeleteRental(w http.ResponseWriter, r *http.Request) {
	if err := h.rentals.DeleteRental(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recordTransition counts one lifecycle transition attempt per action.
func recordTransition(action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	metrics.RentalTransitionsTotal.WithLabelValues(action, outcome).Inc()
}

// MarkPaid handles POST /rentals/{id}/payment.
func (h *RentalHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	rt, err := h.rentals.MarkPaid(r.Context(), mux.Vars(r)["id"])
	recordTransition("payment", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

type scheduleDeliveryRequest struct {
	Date time.Time `json:"date"`
}

// ScheduleDelivery handles POST /rentals/{id}/delivery.
func (h *RentalHandler) ScheduleDelivery(w http.ResponseWriter, r *http.Request) {
	var req scheduleDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Date.IsZero() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "a delivery date is required", Field: "date"})
		return
	}

	rt, err := h.rentals.ScheduleDelivery(r.Context(), mux.Vars(r)["id"], req.Date)
	recordTransition("delivery_scheduled", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

// MarkDelivered handles POST /rentals/{id}/delivery/confirmation.
func (h *RentalHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	rt, err := h.rentals.MarkDelivered(r.Context(), mux.Vars(r)["id"])
	recordTransition("delivered", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

// MarkCollected handles POST /rentals/{id}/collection.
func (h *RentalHandler) MarkCollected(w http.ResponseWriter, r *http.Request) {
	rt, err := h.rentals.MarkCollected(r.Context(), mux.Vars(r)["id"])
	recordTransition("collection", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

// MarkInvoiceIssued handles POST /rentals/{id}/invoice.
func (h *RentalHandler) MarkInvoiceIssued(w http.ResponseWriter, r *http.Request) {
	rt, err := h.rentals.MarkInvoiceIssued(r.Context(), mux.Vars(r)["id"])
	recordTransition("invoice", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

type renewRequest struct {
	NewEndDate     time.Time `json:"new_end_date"`
	NewAmountCents *int64    `json:"new_amount_cents,omitempty"`
}

// Renew handles POST /rentals/{id}/renewal.
func (h *RentalHandler) Renew(w http.ResponseWriter, r *http.Request) {
	var req renewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewEndDate.IsZero() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "a new end date is required", Field: "new_end_date"})
		return
	}

	rt, err := h.rentals.Renew(r.Context(), mux.Vars(r)["id"], req.NewEndDate, req.NewAmountCents)
	recordTransition("renewal", err)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

// ListReceivables handles GET /rentals/{id}/receivables.
func (h *RentalHandler) ListReceivables(w http.ResponseWriter, r *http.Request) {
	items, err := h.rentals.ListReceivables(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Receipt handles GET /rentals/{id}/receipt and streams the PDF.
func (h *RentalHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	pdf, err := h.receipts.RentalReceiptPDF(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=rental-receipt.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
