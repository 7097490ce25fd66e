package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// ShiftPlanChangedMailData 用于排班发生变更后给相关员工发送的通知邮件。
type ShiftPlanChangedMailData struct {
	FullName         string `json:"fullName"`
	TradingPointName string `json:"tradingPointName"`
	DateStart        string `json:"dateStart"`
	DateEnd          string `json:"dateEnd"`
	InsertedCount    int    `json:"insertedCount"`
	SoftDeletedCount int    `json:"softDeletedCount"`
}
