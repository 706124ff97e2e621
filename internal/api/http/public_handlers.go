package http

import (
	"net/http"

	"roofbox-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// DispatchNotification sends a contact or rental notification directly.
func (h *Handler) DispatchNotification(w http.ResponseWriter, r *http.Request) {
	var payload domain.NotificationPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	res, err := h.notifications.Dispatch(r.Context(), &payload)
	if err != nil {
		writeServiceError(w, r, err, MsgNotificationFailed)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListActiveProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err, MsgGenericError)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetProduct(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		writeServiceError(w, r, err, MsgGenericError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type quoteRequest struct {
	ProductID uuid.UUID `json:"productId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
}

func (h *Handler) QuoteRental(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	q, err := h.bookings.Quote(r.Context(), req.ProductID, req.StartDate, req.EndDate)
	if err != nil {
		writeServiceError(w, r, err, MsgGenericError)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// SubmitRentalRequest answers 201 as soon as the request is stored; the
// notification email is sent in the background.
func (h *Handler) SubmitRentalRequest(w http.ResponseWriter, r *http.Request) {
	var sub domain.RentalSubmission
	if !decodeJSON(w, r, &sub) {
		return
	}
	req, err := h.bookings.SubmitRentalRequest(r.Context(), &sub)
	if err != nil {
		writeServiceError(w, r, err, MsgSubmissionFailed)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *Handler) SubmitContactMessage(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	msg, err := h.contacts.SubmitContactMessage(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		writeServiceError(w, r, err, MsgSubmissionFailed)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}
