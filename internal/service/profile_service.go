package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/praveensharma0809/planner-app/internal/dto"
	"github.com/praveensharma0809/planner-app/internal/planner"
	"github.com/praveensharma0809/planner-app/internal/repository"
)

// 每日可用学习分钟的取值范围
const (
	MinDailyMinutes = 15
	MaxDailyMinutes = 960
)

var (
	ErrProfileInvalid       = errors.New("姓名与备考目标不能为空")
	ErrDailyMinutesInvalid  = errors.New("每日学习时长必须在 15-960 分钟之间")
	ErrExamDateInvalid      = errors.New("考试日期格式无效")
)

// ProfileService 学习档案业务接口
type ProfileService interface {
	Get(ctx context.Context, userID string) (*dto.UserResponse, error)
	Update(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type profileService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProfileService 创建 ProfileService 实例
func NewProfileService(repo *repository.Repository, logger *zap.Logger) ProfileService {
	return &profileService{repo: repo, logger: logger}
}

func (s *profileService) Get(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *profileService) Update(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	fullName := strings.TrimSpace(req.FullName)
	exam := strings.TrimSpace(req.PrimaryExam)
	if fullName == "" || exam == "" {
		return nil, ErrProfileInvalid
	}
	if req.DailyAvailableMinutes < MinDailyMinutes || req.DailyAvailableMinutes > MaxDailyMinutes {
		return nil, ErrDailyMinutesInvalid
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	user.FullName = fullName
	user.PrimaryExam = exam
	user.DailyAvailableMinutes = req.DailyAvailableMinutes
	user.ExamDate = nil
	if req.ExamDate != nil && strings.TrimSpace(*req.ExamDate) != "" {
		examDate, ok := planner.ParseDate(*req.ExamDate)
		if !ok {
			return nil, ErrExamDateInvalid
		}
		user.ExamDate = &examDate
	}

	if err := s.repo.User.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("更新档案失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}
