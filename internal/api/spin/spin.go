package spin

import (
	"net/http"

	"github.com/ahmeterdemserceoglu/sloter/internal/api"
	dto "github.com/ahmeterdemserceoglu/sloter/internal/api/dto/spin"
	"github.com/ahmeterdemserceoglu/sloter/internal/converter"
	"github.com/ahmeterdemserceoglu/sloter/internal/service"
	"github.com/ahmeterdemserceoglu/sloter/pkg/req"
	"github.com/ahmeterdemserceoglu/sloter/pkg/resp"
)

type HandlerDeps struct {
	Serv service.SpinService
}

type Handler struct {
	serv service.SpinService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.serv.Spin(r.Context(), converter.ToSpinRequest(payload))
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(*result))
}

// Stats возвращает статистику возврата игроку. Доступно только администратору
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Stats()))
}

// ResetStats обнуляет статистику возврата игроку
func (h *Handler) ResetStats(w http.ResponseWriter, r *http.Request) {
	h.serv.ResetStats()
	w.WriteHeader(http.StatusNoContent)
}
