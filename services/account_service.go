package services

import (
	"errors"

	"gorm.io/gorm"

	"lumra-http-service/config"
	"lumra-http-service/models"
	"lumra-http-service/utils"
)

// 账号目录相关的业务错误
var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPhoneTaken         = errors.New("phone already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrElderlyNotFound    = errors.New("elderly not found")
	ErrGuardianNotFound   = errors.New("guardian not found")
)

// 登录角色，随登录结果返回并写入JWT
const (
	RoleElderly  = "elderly"
	RoleGuardian = "guardian"
)

// InterfaceAccountService defines the account directory service interface
type InterfaceAccountService interface {
	SignupElderly(elderly *models.Elderly, confirm string) error
	SignupGuardian(guardian *models.Guardian, confirm string) error
	Login(username, password string) (role string, userID uint, err error)
	GetElderlyByID(id uint) (*models.Elderly, error)
	GetGuardianByID(id uint) (*models.Guardian, error)
}

// AccountService 提供老人/监护人账号相关的服务
type AccountService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAccountService 创建一个新的账号服务
func NewAccountService(db *gorm.DB, cfg *config.Config) InterfaceAccountService {
	return &AccountService{
		DB:     db,
		Config: cfg,
	}
}

// SignupElderly 注册老人账号。
// 手机号唯一性只依赖存储层的唯一索引，不做预检查；
// 冲突由重复键错误映射为 ErrPhoneTaken。
func (s *AccountService) SignupElderly(elderly *models.Elderly, confirm string) error {
	if elderly.Password != confirm {
		return ErrPasswordMismatch
	}

	if err := s.DB.Create(elderly).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPhoneTaken
		}
		return err
	}
	return nil
}

// SignupGuardian 注册监护人账号。
// 先做邮箱/手机号预检查以便提示具体冲突字段；并发下以
// 存储层唯一索引为最终裁决，重复键错误按邮箱冲突提示。
func (s *AccountService) SignupGuardian(guardian *models.Guardian, confirm string) error {
	if guardian.Password != confirm {
		return ErrPasswordMismatch
	}

	var count int64
	if err := s.DB.Model(&models.Guardian{}).Where("email = ?", guardian.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}

	if err := s.DB.Model(&models.Guardian{}).Where("phone = ?", guardian.Phone).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrPhoneTaken
	}

	if err := s.DB.Create(guardian).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// Login 校验登录凭证。username 先按老人手机号匹配，再按监护人手机号匹配，
// 第一个密码校验通过的账号胜出。
func (s *AccountService) Login(username, password string) (string, uint, error) {
	var elderly models.Elderly
	if err := s.DB.Where("phone = ?", username).First(&elderly).Error; err == nil {
		if utils.CheckPasswordHash(password, elderly.Password) {
			return RoleElderly, elderly.ID, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", 0, err
	}

	var guardian models.Guardian
	if err := s.DB.Where("phone = ?", username).First(&guardian).Error; err == nil {
		if utils.CheckPasswordHash(password, guardian.Password) {
			return RoleGuardian, guardian.ID, nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", 0, err
	}

	return "", 0, ErrInvalidCredentials
}

// GetElderlyByID 根据ID获取老人账号
func (s *AccountService) GetElderlyByID(id uint) (*models.Elderly, error) {
	var elderly models.Elderly
	if err := s.DB.First(&elderly, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrElderlyNotFound
		}
		return nil, err
	}
	return &elderly, nil
}

// GetGuardianByID 根据ID获取监护人账号
func (s *AccountService) GetGuardianByID(id uint) (*models.Guardian, error) {
	var guardian models.Guardian
	if err := s.DB.First(&guardian, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuardianNotFound
		}
		return nil, err
	}
	return &guardian, nil
}
