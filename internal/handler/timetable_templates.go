package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
	"github.com/paiban-dev/workforce-manager/backend/internal/utils"
)

func (h *Handler) CreateTimetableTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TradingPointID       int64  `json:"tradingPointID" validate:"required"`
		Name                 string `json:"name" validate:"required"`
		ApplyTypeMnemocode   string `json:"applyTypeMnemocode" validate:"required,oneof=week_days days_on_off"`
		StartingPointDateFix string `json:"startingPointDateFix"`
		DaysOnOffLength      *int32 `json:"daysOnOffLength"`
		Cells                []struct {
			DayInfoMnemocode string `json:"dayInfoMnemocode" validate:"required"`
			TimeFrom         string `json:"timeFrom" validate:"required"`
			DurationMinutes  int32  `json:"durationMinutes" validate:"required"`
			ShiftTypeID      int64  `json:"shiftTypeID" validate:"required"`
			WorklineID       *int64 `json:"worklineID"`
		} `json:"cells" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	template := &domain.TimetableTemplate{
		TradingPointID:       req.TradingPointID,
		Name:                 req.Name,
		ApplyTypeMnemocode:   req.ApplyTypeMnemocode,
		StartingPointDateFix: req.StartingPointDateFix,
		DaysOnOffLength:      req.DaysOnOffLength,
	}
	for _, cell := range req.Cells {
		template.Cells = append(template.Cells, domain.TimetableTemplateCell{
			DayInfoMnemocode: cell.DayInfoMnemocode,
			TimeFrom:         cell.TimeFrom,
			DurationMinutes:  cell.DurationMinutes,
			ShiftTypeID:      cell.ShiftTypeID,
			WorklineID:       cell.WorklineID,
		})
	}

	// 跨字段约束由这里统一检查
	if err := utils.ValidateTimetableTemplate(template); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateTimetableTemplate(template); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "timetable_templates_trading_point_id_fkey":
				h.badRequest(w, r, errors.New("门店不存在"))
			case pgErr.ConstraintName == "timetable_template_cells_shift_type_id_fkey":
				h.badRequest(w, r, errors.New("班次类型不存在"))
			case pgErr.ConstraintName == "timetable_template_cells_workline_id_fkey":
				h.badRequest(w, r, errors.New("工作线不存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "模板创建成功", template)
}

func (h *Handler) GetTimetableTemplate(w http.ResponseWriter, r *http.Request) {
	template := r.Context().Value(TimetableTemplateCtx).(*domain.TimetableTemplate)
	h.successResponse(w, r, "获取模板成功", template)
}

func (h *Handler) UpdateTimetableTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	template := r.Context().Value(TimetableTemplateCtx).(*domain.TimetableTemplate)
	template.Name = req.Name

	if err := h.repository.UpdateTimetableTemplateName(template); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "更新模板失败，请重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "更新模板成功", template)
}

func (h *Handler) DeleteTimetableTemplate(w http.ResponseWriter, r *http.Request) {
	template := r.Context().Value(TimetableTemplateCtx).(*domain.TimetableTemplate)

	if err := h.repository.SoftDeleteTimetableTemplate(template.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除模板成功", nil)
}
