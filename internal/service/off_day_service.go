package service

import (
	"context"
	"errors"
	"io"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/praveensharma0809/planner-app/internal/dto"
	"github.com/praveensharma0809/planner-app/internal/model"
	"github.com/praveensharma0809/planner-app/internal/planner"
	"github.com/praveensharma0809/planner-app/internal/repository"
	pkgerrors "github.com/praveensharma0809/planner-app/pkg/errors"
)

// ── 休息日模块业务错误 ──

var (
	ErrOffDayNotFound    = errors.New("休息日不存在")
	ErrOffDayExists      = errors.New("该日期已是休息日")
	ErrOffDayDateInvalid = errors.New("日期格式无效")
	ErrICSInvalid        = errors.New("日历文件无法解析")
)

// OffDayService 休息日业务接口
type OffDayService interface {
	List(ctx context.Context, userID string) ([]dto.OffDayResponse, error)
	Add(ctx context.Context, userID string, req *dto.CreateOffDayRequest) (*dto.OffDayResponse, error)
	Delete(ctx context.Context, userID, id string) error
	ImportICS(ctx context.Context, userID string, reader io.Reader) (*dto.ImportOffDaysResponse, error)
}

type offDayService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOffDayService 创建 OffDayService 实例
func NewOffDayService(repo *repository.Repository, logger *zap.Logger) OffDayService {
	return &offDayService{repo: repo, logger: logger}
}

func (s *offDayService) List(ctx context.Context, userID string) ([]dto.OffDayResponse, error) {
	offDays, err := s.repo.OffDay.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出休息日失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.OffDayResponse, 0, len(offDays))
	for i := range offDays {
		result = append(result, toOffDayResponse(&offDays[i]))
	}
	return result, nil
}

func (s *offDayService) Add(ctx context.Context, userID string, req *dto.CreateOffDayRequest) (*dto.OffDayResponse, error) {
	date, ok := planner.ParseDate(req.Date)
	if !ok {
		return nil, ErrOffDayDateInvalid
	}

	offDay := &model.OffDay{
		UserID: userID,
		Date:   date,
		Reason: strings.TrimSpace(req.Reason),
	}
	if err := s.repo.OffDay.Create(ctx, offDay); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			return nil, ErrOffDayExists
		}
		s.logger.Error("添加休息日失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := toOffDayResponse(offDay)
	return &resp, nil
}

func (s *offDayService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.OffDay.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOffDayNotFound
		}
		s.logger.Error("删除休息日失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ImportICS 将日历中的事件日期批量登记为休息日，已存在的日期计入 skipped
func (s *offDayService) ImportICS(ctx context.Context, userID string, reader io.Reader) (*dto.ImportOffDaysResponse, error) {
	candidates, err := ParseOffDaysICS(reader, nil)
	if errors.Is(err, ErrICSTooManyDates) {
		s.logger.Warn("日历文件日期过多", zap.String("user_id", userID))
		return nil, err
	}
	if err != nil {
		s.logger.Warn("解析日历文件失败", zap.String("user_id", userID), zap.Error(err))
		return nil, ErrICSInvalid
	}

	existing, err := s.repo.OffDay.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("列出休息日失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	known := make(map[string]bool, len(existing))
	for _, o := range existing {
		known[planner.FormatDate(o.Date)] = true
	}

	result := &dto.ImportOffDaysResponse{}
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		for _, c := range candidates {
			if known[planner.FormatDate(c.Date)] {
				result.Skipped++
				continue
			}
			if err := txRepo.OffDay.Create(ctx, &model.OffDay{UserID: userID, Date: c.Date, Reason: c.Reason}); err != nil {
				return err
			}
			result.Created++
		}
		return nil
	})
	if err != nil {
		s.logger.Error("导入休息日失败，事务回滚", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("日历导入完成",
		zap.String("user_id", userID),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func toOffDayResponse(o *model.OffDay) dto.OffDayResponse {
	return dto.OffDayResponse{
		ID:     o.OffDayID,
		Date:   planner.FormatDate(o.Date),
		Reason: o.Reason,
	}
}
