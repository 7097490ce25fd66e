package handler

type ContextKey string

var (
	RoleCtxKey           ContextKey = "role"
	SubCtxKey            ContextKey = "sub"
	MyInfoCtx            ContextKey = "myInfo"
	UserInfoCtx          ContextKey = "userInfo"
	TradingPointCtx      ContextKey = "tradingPoint"
	TimetableTemplateCtx ContextKey = "timetableTemplate"
	VacancyCtx           ContextKey = "vacancy"
	EmploymentCtx        ContextKey = "employment"
)
