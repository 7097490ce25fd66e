package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/paiban-dev/workforce-manager/backend/internal/config"
	"github.com/paiban-dev/workforce-manager/backend/internal/repository"
	"github.com/paiban-dev/workforce-manager/backend/internal/seed"
	"github.com/paiban-dev/workforce-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var tradingPointID int64

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 插入随机门店, 3: 插入随机排班模板, 4: 插入整套演示数据)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Int64Var(&tradingPointID, "trading-point-id", 0, "随机插入排班模板的门店 ID")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("无法生成随机用户", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("无法插入用户", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入用户成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的门店数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				tp := utils.GenerateRandomTradingPoint()
				if err := repo.CreateTradingPoint(tp); err != nil {
					slog.Error("无法插入门店", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入门店成功", slog.Int("count", n-cnt))
		}
	case 3:
		if tradingPointID <= 0 {
			slog.Error("请输入合法的门店 ID")
			return
		}

		// 先确认门店存在
		if _, err := repo.GetTradingPointByID(tradingPointID); err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				slog.Error("指定的门店不存在", slog.Int64("trading_point_id", tradingPointID))
			default:
				slog.Error("无法获取门店", slog.String("error", err.Error()))
			}
			return
		}

		// 模板的单元格需要挂在真实的班次类型和工作线上
		shiftType := utils.GenerateRandomShiftType(true)
		if err := repo.CreateShiftType(shiftType); err != nil {
			slog.Error("无法插入班次类型", slog.String("error", err.Error()))
			return
		}
		workline := utils.GenerateRandomWorkline()
		if err := repo.CreateWorkline(workline); err != nil {
			slog.Error("无法插入工作线", slog.String("error", err.Error()))
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			template := utils.GenerateRandomTimetableTemplate(tradingPointID, shiftType.ID, &workline.ID)
			if err := repo.CreateTimetableTemplate(template); err != nil {
				slog.Error("无法插入排班模板", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("插入排班模板成功", slog.Int("count", cnt))
	case 4:
		seed.SeedDemoData(cfg, repo, 3, n)
	default:
		slog.Error("指定的操作非法")
	}
}
