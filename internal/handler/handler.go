package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/paiban-dev/workforce-manager/backend/internal/config"
	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
	"github.com/paiban-dev/workforce-manager/backend/internal/repository"
	"github.com/paiban-dev/workforce-manager/backend/internal/shiftgen"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client
	expander    *shiftgen.Expander

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,
		expander:    shiftgen.NewExpander(shiftgen.NewConverter()),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/trading-points", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin})).Post("/", h.CreateTradingPoint)
			r.Get("/", h.GetAllTradingPoints)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.tradingPoint)
				r.Get("/", h.GetTradingPoint)
				r.Get("/timetable-templates", h.GetTimetableTemplatesOfTradingPoint)
			})
		})

		r.Route("/timetable-templates", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Post("/", h.CreateTimetableTemplate)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.timetableTemplate)
				r.Get("/", h.GetTimetableTemplate)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Patch("/", h.UpdateTimetableTemplate)
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Delete("/", h.DeleteTimetableTemplate)
			})
		})

		r.Route("/vacancies", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Post("/", h.CreateVacancy)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.vacancy)
				r.Get("/", h.GetVacancy)
				r.Get("/shift-plans", h.GetVacancyShiftPlans)
				// 只有管理员和店长能批量生成班次
				r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Post("/apply-template", h.ApplyTemplateToVacancy)
			})
		})

		r.Route("/employments/{id}", func(r chi.Router) {
			r.Use(h.employment)
			r.Get("/shift-plans", h.GetEmploymentShiftPlans)
			r.With(h.RequiredRole([]domain.Role{domain.RoleAdmin, domain.RoleManager})).Post("/apply-template", h.ApplyTemplateToEmployment)
		})
	})
}
