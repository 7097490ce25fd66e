package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
	"github.com/paiban-dev/workforce-manager/backend/internal/repository"
	"github.com/paiban-dev/workforce-manager/backend/internal/shiftgen"
)

type applyTemplateRequest struct {
	TemplateID                         int64  `json:"templateID" validate:"required"`
	DateStartFix                       string `json:"dateStartFix" validate:"required"`
	DateEndFix                         string `json:"dateEndFix" validate:"required"`
	ActionRequiredOverlappingMnemocode string `json:"actionRequiredOverlappingMnemocode" validate:"required"`
}

// ApplyTemplateToVacancy 把时间表模板应用到某个空缺的排班时间线上。
func (h *Handler) ApplyTemplateToVacancy(w http.ResponseWriter, r *http.Request) {
	vacancy := r.Context().Value(VacancyCtx).(*domain.Vacancy)

	var req applyTemplateRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 策略必须在做任何展开之前就解析完成，拼错的助记码不应该走到分类那一步
	action, err := shiftgen.ParseOverlapAction(req.ActionRequiredOverlappingMnemocode)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 按主体加分布式锁，避免同一空缺上的并发应用互相踩踏
	lockKey := fmt.Sprintf("apply_template:vacancy:%d", vacancy.ID)
	locked, err := h.acquireApplyLock(r.Context(), lockKey)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !locked {
		h.errorResponse(w, r, "该空缺正在应用模板，请稍后重试")
		return
	}
	defer h.releaseApplyLock(lockKey)

	template, tp, err := h.loadTemplateForApply(req.TemplateID, vacancy.TradingPointID)
	if err != nil {
		h.respondApplyLoadError(w, r, err)
		return
	}

	candidates, err := h.expander.Expand(template, req.DateStartFix, req.DateEndFix, tp.TimeZoneMarker)
	if err != nil {
		h.respondExpandError(w, r, err)
		return
	}

	existing, err := h.repository.GetExistingVacancyShiftPlans(vacancy.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	worklineAcceptable, err := h.repository.GetWorklineAcceptabilityMap()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	report := shiftgen.Classify(candidates, existing, worklineAcceptable)

	plan, err := shiftgen.Resolve(report, candidates, action)
	if err != nil {
		h.respondResolveError(w, r, err)
		return
	}

	result, err := h.repository.ReconcileVacancyShiftPlans(vacancy.ID, plan, "applyTimetableTemplate")
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "模板应用成功", result)
}

// ApplyTemplateToEmployment 把时间表模板应用到某段雇佣关系的排班时间线上，
// 落库成功后给对应员工发一封变更通知邮件。
func (h *Handler) ApplyTemplateToEmployment(w http.ResponseWriter, r *http.Request) {
	employment := r.Context().Value(EmploymentCtx).(*domain.Employment)

	var req applyTemplateRequest
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	action, err := shiftgen.ParseOverlapAction(req.ActionRequiredOverlappingMnemocode)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	lockKey := fmt.Sprintf("apply_template:employment:%d", employment.ID)
	locked, err := h.acquireApplyLock(r.Context(), lockKey)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !locked {
		h.errorResponse(w, r, "该雇佣关系正在应用模板，请稍后重试")
		return
	}
	defer h.releaseApplyLock(lockKey)

	template, tp, err := h.loadTemplateForApply(req.TemplateID, employment.TradingPointID)
	if err != nil {
		h.respondApplyLoadError(w, r, err)
		return
	}

	candidates, err := h.expander.Expand(template, req.DateStartFix, req.DateEndFix, tp.TimeZoneMarker)
	if err != nil {
		h.respondExpandError(w, r, err)
		return
	}

	existing, err := h.repository.GetExistingWorkingShiftPlans(employment.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	worklineAcceptable, err := h.repository.GetWorklineAcceptabilityMap()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	report := shiftgen.Classify(candidates, existing, worklineAcceptable)

	plan, err := shiftgen.Resolve(report, candidates, action)
	if err != nil {
		h.respondResolveError(w, r, err)
		return
	}

	result, err := h.repository.ReconcileWorkingShiftPlans(employment.ID, employment.TradingPointID, plan, "applyTimetableTemplate")
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 通知邮件失败不回滚排班，只记录为内部错误
	if err := h.notifyShiftPlanChanged(employment, tp, req.DateStartFix, req.DateEndFix, result); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "模板应用成功", result)
}

var errApplyTemplateDeleted = errors.New("模板已被删除")
var errApplyTemplateWrongTradingPoint = errors.New("模板不属于该门店")

// loadTemplateForApply 取出模板和它所属的门店，并保证模板与主体属于同一家门店。
func (h *Handler) loadTemplateForApply(templateID int64, tradingPointID int64) (*domain.TimetableTemplate, *domain.TradingPoint, error) {
	template, err := h.repository.GetTimetableTemplate(templateID)
	if err != nil {
		return nil, nil, err
	}
	if template.DateDeleted != nil {
		return nil, nil, errApplyTemplateDeleted
	}
	if template.TradingPointID != tradingPointID {
		return nil, nil, errApplyTemplateWrongTradingPoint
	}

	tp, err := h.repository.GetTradingPointByID(tradingPointID)
	if err != nil {
		return nil, nil, err
	}

	return template, tp, nil
}

func (h *Handler) respondApplyLoadError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		h.errorResponse(w, r, "模板不存在")
	case errors.Is(err, errApplyTemplateDeleted):
		h.errorResponse(w, r, err.Error())
	case errors.Is(err, errApplyTemplateWrongTradingPoint):
		h.errorResponse(w, r, err.Error())
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) respondExpandError(w http.ResponseWriter, r *http.Request, err error) {
	var dateErr *shiftgen.WrongDateFormatError
	var timeErr *shiftgen.WrongTimeFormatError
	var periodErr *shiftgen.DatePeriodError

	switch {
	case errors.As(err, &dateErr), errors.As(err, &timeErr), errors.As(err, &periodErr):
		h.badRequest(w, r, err)
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) respondResolveError(w http.ResponseWriter, r *http.Request, err error) {
	var warningErr *shiftgen.OverlapWarningError
	var unacceptableErr *shiftgen.UnacceptableOverlapError

	switch {
	case errors.As(err, &warningErr):
		// 把完整的冲突报告交给前端，让用户带着明确的策略重新提交
		h.errorResponseWithData(w, r, warningErr.Error(), warningErr.Report)
	case errors.As(err, &unacceptableErr):
		h.errorResponseWithData(w, r, unacceptableErr.Error(), unacceptableErr.Report)
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) acquireApplyLock(ctx context.Context, key string) (bool, error) {
	expiration := time.Duration(h.config.Redis.ApplyLockExpiration) * time.Second
	return h.redisClient.SetNX(ctx, key, "locked", expiration).Result()
}

func (h *Handler) releaseApplyLock(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()
	_ = h.redisClient.Del(ctx, key).Err()
}

func (h *Handler) notifyShiftPlanChanged(employment *domain.Employment, tp *domain.TradingPoint, dateStart string, dateEnd string, result *repository.ReconcileResult) error {
	user, err := h.repository.GetUserByID(employment.UserID)
	if err != nil {
		return err
	}

	mailMessage := domain.MailMessage{
		Type: "shift_plan_changed",
		To:   user.Email,
		Data: domain.ShiftPlanChangedMailData{
			FullName:         user.FullName,
			TradingPointName: tp.Name,
			DateStart:        dateStart,
			DateEnd:          dateEnd,
			InsertedCount:    len(result.InsertedIDs),
			SoftDeletedCount: len(result.SoftDeletedIDs),
		},
	}

	emailData, err := json.Marshal(mailMessage)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        emailData,
		},
	)
}
