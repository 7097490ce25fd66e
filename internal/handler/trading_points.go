package handler

import (
	"net/http"
	"time"

	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
)

func (h *Handler) CreateTradingPoint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string `json:"name" validate:"required"`
		TimeZoneMarker string `json:"timeZoneMarker" validate:"required"`
		Address        string `json:"address" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 时区标识必须是可加载的 IANA 名称，否则后续应用模板时才会暴雷
	if _, err := time.LoadLocation(req.TimeZoneMarker); err != nil {
		h.errorResponse(w, r, "无效的时区标识")
		return
	}

	tp := &domain.TradingPoint{
		Name:           req.Name,
		TimeZoneMarker: req.TimeZoneMarker,
		Address:        req.Address,
	}

	if err := h.repository.CreateTradingPoint(tp); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "门店创建成功", tp)
}

func (h *Handler) GetAllTradingPoints(w http.ResponseWriter, r *http.Request) {
	points, err := h.repository.GetAllTradingPoints()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取门店列表成功", points)
}

func (h *Handler) GetTradingPoint(w http.ResponseWriter, r *http.Request) {
	tp := r.Context().Value(TradingPointCtx).(*domain.TradingPoint)
	h.successResponse(w, r, "获取门店信息成功", tp)
}

func (h *Handler) GetTimetableTemplatesOfTradingPoint(w http.ResponseWriter, r *http.Request) {
	tp := r.Context().Value(TradingPointCtx).(*domain.TradingPoint)

	templates, err := h.repository.GetTimetableTemplatesByTradingPoint(tp.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取模板列表成功", templates)
}
