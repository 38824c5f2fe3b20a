package payment

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ahmeterdemserceoglu/sloter/internal/api"
	dto "github.com/ahmeterdemserceoglu/sloter/internal/api/dto/payment"
	"github.com/ahmeterdemserceoglu/sloter/internal/service"
	"github.com/ahmeterdemserceoglu/sloter/pkg/req"
	"github.com/ahmeterdemserceoglu/sloter/pkg/resp"
)

type HandlerDeps struct {
	Serv service.PaymentService
}

type Handler struct {
	serv service.PaymentService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.DepositRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}

	balance, err := h.serv.Deposit(r.Context(), amount)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.DepositResponse{Balance: balance})
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.serv.GetBalance(r.Context())
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.BalanceResponse{Balance: balance})
}
