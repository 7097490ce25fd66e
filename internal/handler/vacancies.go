package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
)

func (h *Handler) CreateVacancy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TradingPointID int64   `json:"tradingPointID" validate:"required"`
		JobTitle       string  `json:"jobTitle" validate:"required"`
		Description    string  `json:"description"`
		CostPerHour    float64 `json:"costPerHour" validate:"required,gt=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	vacancy := &domain.Vacancy{
		TradingPointID: req.TradingPointID,
		JobTitle:       req.JobTitle,
		Description:    req.Description,
		CostPerHour:    req.CostPerHour,
	}

	if err := h.repository.CreateVacancy(vacancy); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "vacancies_trading_point_id_fkey":
			h.badRequest(w, r, errors.New("门店不存在"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "空缺创建成功", vacancy)
}

func (h *Handler) GetVacancy(w http.ResponseWriter, r *http.Request) {
	vacancy := r.Context().Value(VacancyCtx).(*domain.Vacancy)
	h.successResponse(w, r, "获取空缺信息成功", vacancy)
}

func (h *Handler) GetVacancyShiftPlans(w http.ResponseWriter, r *http.Request) {
	vacancy := r.Context().Value(VacancyCtx).(*domain.Vacancy)

	plans, err := h.repository.GetVacancyShiftPlans(vacancy.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取空缺班次成功", plans)
}

func (h *Handler) GetEmploymentShiftPlans(w http.ResponseWriter, r *http.Request) {
	employment := r.Context().Value(EmploymentCtx).(*domain.Employment)

	plans, err := h.repository.GetWorkingShiftPlans(employment.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取排班成功", plans)
}
