package http

import (
	"net/http"
	"strconv"

	"roofbox-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type priceRequest struct {
	PricePerDay decimal.Decimal `json:"pricePerDay"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type imageResponse struct {
	ImageURL string `json:"imageUrl"`
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func pagination(r *http.Request) (page, pageSize int32) {
	q := r.URL.Query()
	if v, err := strconv.ParseInt(q.Get("page"), 10, 32); err == nil {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(q.Get("pageSize"), 10, 32); err == nil {
		pageSize = int32(v)
	}
	return page, pageSize
}

func (h *Handler) AdminListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.admin.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err, MsgGenericError)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) AdminUpdateProductPrice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req priceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.admin.UpdateProductPrice(r.Context(), id, req.PricePerDay); err != nil {
		writeServiceError(w, r, err, MsgGenericError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminUploadProductImage takes the raw image as the request body.
func (h *Handler) AdminUploadProductImage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+1)
	}
	url, err := h.admin.SetProductImage(r.Context(), id, r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		writeServiceError(w, r, err, MsgGenericError)
		return
	}
	writeJSON(w, http.StatusOK, imageResponse{ImageURL: url})
}

func (h *Handler) AdminListRentalRequests(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	filter := domain.RentalRequestFilter{
		Status:   domain.RentalStatus(r.URL.Query().Get("status")),
		Page:     page,
		PageSize: pageSize,
	}
	items, total, err := h.admin.ListRentalRequests(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err, MsgGenericError)
		return
	}
	if items == nil {
		items = []domain.RentalRequest{}
	}
	writeJSON(w, http.StatusOK, listResponse[domain.RentalRequest]{Items: items, Total: total})
}

func (h *Handler) AdminUpdateRentalRequestStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.admin.UpdateRentalRequestStatus(r.Context(), id, domain.RentalStatus(req.Status)); err != nil {
		writeServiceError(w, r, err, MsgGenericError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdminListContactMessages(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	status := domain.ContactStatus(r.URL.Query().Get("status"))
	items, total, err := h.admin.ListContactMessages(r.Context(), status, page, pageSize)
	if err != nil {
		writeServiceError(w, r, err, MsgGenericError)
		return
	}
	if items == nil {
		items = []domain.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, listResponse[domain.ContactMessage]{Items: items, Total: total})
}

func (h *Handler) AdminUpdateContactMessageStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.admin.UpdateContactMessageStatus(r.Context(), id, domain.ContactStatus(req.Status)); err != nil {
		writeServiceError(w, r, err, MsgGenericError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
