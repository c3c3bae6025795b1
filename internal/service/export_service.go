package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yuanqiamanman-1/6667-sub001/internal/authz"
	"github.com/yuanqiamanman-1/6667-sub001/internal/repository"
)

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
type ExportService interface {
	// ExportPointsLedger 导出全量积分流水
	ExportPointsLedger(ctx context.Context, c Caller) (*bytes.Buffer, string, error)
	// ExportUsers 导出用户账号清单
	ExportUsers(ctx context.Context, c Caller) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	actors ActorResolver
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, actors ActorResolver, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, actors: actors, logger: logger}
}

func (s *exportService) authorize(ctx context.Context, c Caller) error {
	actor, err := s.actors.Resolve(ctx, c)
	if err != nil {
		return err
	}
	return authz.Authorize(actor, authz.ActionManageAccounts, authz.GlobalScope())
}

func (s *exportService) ExportPointsLedger(ctx context.Context, c Caller) (*bytes.Buffer, string, error) {
	if err := s.authorize(ctx, c); err != nil {
		return nil, "", err
	}

	txns, err := s.repo.Points.ListAllTransactions(ctx)
	if err != nil {
		s.logger.Error("查询积分流水失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "积分流水"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"流水ID", "用户ID", "类型", "变动", "标题", "时间"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	for row, txn := range txns {
		values := []interface{}{
			txn.TxnID,
			txn.UserID,
			txn.Type,
			txn.Delta,
			txn.Title,
			txn.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	filename := fmt.Sprintf("积分流水_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

func (s *exportService) ExportUsers(ctx context.Context, c Caller) (*bytes.Buffer, string, error) {
	if err := s.authorize(ctx, c); err != nil {
		return nil, "", err
	}

	users, _, err := s.repo.User.List(ctx, repository.UserFilter{
		IncludeInactive: true,
		Offset:          0,
		Limit:           100000,
	})
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "用户"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"用户ID", "用户名", "邮箱", "姓名", "角色", "高校", "状态", "学生认证", "讲师认证", "注册时间"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, "", ErrExportGenerateFail
		}
	}

	status := func(active bool) string {
		if active {
			return "正常"
		}
		return "停用"
	}
	mark := func(ok bool) string {
		if ok {
			return "是"
		}
		return "否"
	}

	for row, u := range users {
		values := []interface{}{
			u.UserID,
			u.Username,
			u.Email,
			u.FullName,
			u.Role,
			u.SchoolID,
			status(u.IsActive),
			mark(u.StudentVerified),
			mark(u.TeacherVerified),
			u.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, "", ErrExportGenerateFail
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	filename := fmt.Sprintf("用户清单_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}
