package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/paiban-dev/workforce-manager/backend/internal/config"
	"github.com/paiban-dev/workforce-manager/backend/internal/domain"
	"github.com/paiban-dev/workforce-manager/backend/internal/repository"
	"github.com/paiban-dev/workforce-manager/backend/internal/utils"
)

// SeedDemoData 填充一套可以直接演练模板应用流程的演示数据：
// 门店、工作线、班次类型、员工及其雇佣关系、空缺和排班模板。
func SeedDemoData(cfg *config.Config, r *repository.Repository, tradingPointCount int, usersPerPoint int) {
	for i := 0; i < tradingPointCount; i++ {
		tp := utils.GenerateRandomTradingPoint()
		if err := r.CreateTradingPoint(tp); err != nil {
			slog.Error("插入门店失败", "error", err)
			continue
		}

		// 每家门店一条允许重叠的工作线和一条不允许重叠的
		overlapWorkline := utils.GenerateRandomWorkline()
		overlapWorkline.IsOverlapAcceptable = true
		if err := r.CreateWorkline(overlapWorkline); err != nil {
			slog.Error("插入工作线失败", "error", err)
			continue
		}
		strictWorkline := utils.GenerateRandomWorkline()
		strictWorkline.IsOverlapAcceptable = false
		if err := r.CreateWorkline(strictWorkline); err != nil {
			slog.Error("插入工作线失败", "error", err)
			continue
		}

		workingShiftType := utils.GenerateRandomShiftType(true)
		if err := r.CreateShiftType(workingShiftType); err != nil {
			slog.Error("插入班次类型失败", "error", err)
			continue
		}

		// 排班模板：一个挂在允许重叠的工作线上，一个不挂工作线
		template := utils.GenerateRandomTimetableTemplate(tp.ID, workingShiftType.ID, &overlapWorkline.ID)
		if err := r.CreateTimetableTemplate(template); err != nil {
			slog.Error("插入排班模板失败", "error", err)
		}
		bareTemplate := utils.GenerateRandomTimetableTemplate(tp.ID, workingShiftType.ID, nil)
		if err := r.CreateTimetableTemplate(bareTemplate); err != nil {
			slog.Error("插入排班模板失败", "error", err)
		}

		vacancy := utils.GenerateRandomVacancy(tp.ID)
		if err := r.CreateVacancy(vacancy); err != nil {
			slog.Error("插入空缺失败", "error", err)
		}

		for j := 0; j < usersPerPoint; j++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("生成随机用户失败", "error", err)
				continue
			}
			user.Role = domain.RoleEmployee
			if err := r.CreateUser(user); err != nil {
				slog.Error("插入用户失败", "error", err)
				continue
			}

			employment := &domain.Employment{
				UserID:          user.ID,
				TradingPointID:  tp.ID,
				JobTitle:        vacancy.JobTitle,
				WorkingDateFrom: time.Now().AddDate(0, 0, -rand.Intn(180)),
			}
			if err := r.CreateEmployment(employment); err != nil {
				slog.Error("插入雇佣关系失败", "error", err)
			}
		}
	}

	slog.Info("插入演示数据完成")
}
