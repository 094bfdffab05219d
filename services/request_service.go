package services

import (
	"errors"

	"gorm.io/gorm"

	"lumra-http-service/config"
	"lumra-http-service/models"
)

// 连接请求状态机相关的业务错误
var (
	ErrRequestNotFound  = errors.New("request not found")
	ErrRequestDuplicate = errors.New("request already exists for this elderly")
	ErrRequestProcessed = errors.New("request already processed")
	ErrInvalidAction    = errors.New("action must be 'accept' or 'reject'")
)

// MaxGuardiansPerElderly 每位老人最多返回的已接受监护人数（业务上限，无分页）
const MaxGuardiansPerElderly = 7

// PendingRequest 待处理请求的投影（带监护人姓名）
type PendingRequest struct {
	RequestID    uint   `json:"request_id"`
	GuardianID   uint   `json:"guardian_id"`
	GuardianName string `json:"guardian_name"`
	Status       string `json:"status"`
}

// AcceptedElderly 监护人侧已连接老人的投影
type AcceptedElderly struct {
	ElderlyID   uint   `json:"elderly_id"`
	ElderlyName string `json:"elderly_name"`
	Phone       string `json:"phone"`
}

// AcceptedGuardian 老人侧已连接监护人的投影
type AcceptedGuardian struct {
	GuardianID   uint   `json:"guardian_id"`
	GuardianName string `json:"guardian_name"`
	Relation     string `json:"relation"`
}

// InterfaceRequestService defines the connection request service interface
type InterfaceRequestService interface {
	CreateRequest(guardianID uint, elderlyPhone string) (*models.GuardianRequest, error)
	ListPendingRequests(elderlyID uint) ([]PendingRequest, error)
	RespondToRequest(requestID, elderlyID uint, action string) (string, error)
	ListAcceptedElderlies(guardianID uint) ([]AcceptedElderly, error)
	ListAcceptedGuardians(elderlyID uint) ([]AcceptedGuardian, error)
	IsGuardianAccepted(guardianID, elderlyID uint) (bool, error)
}

// RequestService 提供监护人-老人连接请求相关的服务
type RequestService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewRequestService 创建一个新的连接请求服务
func NewRequestService(db *gorm.DB, cfg *config.Config) InterfaceRequestService {
	return &RequestService{
		DB:     db,
		Config: cfg,
	}
}

// CreateRequest 由监护人按老人手机号发起连接请求。
// 同一 (guardian, elderly) 对无论历史状态如何只允许一条记录；
// 预检查之外由复合唯一索引兜底，并发重复插入同样映射为重复错误。
func (s *RequestService) CreateRequest(guardianID uint, elderlyPhone string) (*models.GuardianRequest, error) {
	var elderly models.Elderly
	if err := s.DB.Where("phone = ?", elderlyPhone).First(&elderly).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrElderlyNotFound
		}
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.GuardianRequest{}).
		Where("guardian_id = ? AND elderly_id = ?", guardianID, elderly.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrRequestDuplicate
	}

	request := &models.GuardianRequest{
		GuardianID: guardianID,
		ElderlyID:  elderly.ID,
		Status:     models.RequestStatusRequested,
	}
	if err := s.DB.Create(request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRequestDuplicate
		}
		return nil, err
	}
	return request, nil
}

// ListPendingRequests 返回老人待处理的连接请求，按插入顺序排列
func (s *RequestService) ListPendingRequests(elderlyID uint) ([]PendingRequest, error) {
	var requests []PendingRequest
	err := s.DB.Table("guardian_requests").
		Select("guardian_requests.id AS request_id, guardian_requests.guardian_id, guardian.name AS guardian_name, guardian_requests.status").
		Joins("JOIN guardian ON guardian.id = guardian_requests.guardian_id").
		Where("guardian_requests.elderly_id = ? AND guardian_requests.status = ?", elderlyID, models.RequestStatusRequested).
		Order("guardian_requests.id").
		Scan(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// RespondToRequest 由老人对请求做一次性的接受/拒绝处理。
// 状态迁移通过带状态条件的原子UPDATE完成，requested 之外的状态均为终态；
// elderlyID 限定只有请求的目标老人可以处理它。
func (s *RequestService) RespondToRequest(requestID, elderlyID uint, action string) (string, error) {
	var newStatus string
	switch action {
	case "accept":
		newStatus = models.RequestStatusAccepted
	case "reject":
		newStatus = models.RequestStatusRejected
	default:
		return "", ErrInvalidAction
	}

	result := s.DB.Model(&models.GuardianRequest{}).
		Where("id = ? AND elderly_id = ? AND status = ?", requestID, elderlyID, models.RequestStatusRequested).
		Update("status", newStatus)
	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected == 0 {
		// 区分不存在、不属于该老人、已处理三种情况
		var request models.GuardianRequest
		if err := s.DB.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", ErrRequestNotFound
			}
			return "", err
		}
		if request.ElderlyID != elderlyID {
			// 不向无关调用方泄露请求的存在
			return "", ErrRequestNotFound
		}
		return "", ErrRequestProcessed
	}
	return newStatus, nil
}

// ListAcceptedElderlies 返回监护人已连接的全部老人
func (s *RequestService) ListAcceptedElderlies(guardianID uint) ([]AcceptedElderly, error) {
	var elderlies []AcceptedElderly
	err := s.DB.Table("guardian_requests").
		Select("elderly.id AS elderly_id, elderly.name AS elderly_name, elderly.phone").
		Joins("JOIN elderly ON elderly.id = guardian_requests.elderly_id").
		Where("guardian_requests.guardian_id = ? AND guardian_requests.status = ?", guardianID, models.RequestStatusAccepted).
		Order("guardian_requests.id").
		Scan(&elderlies).Error
	if err != nil {
		return nil, err
	}
	return elderlies, nil
}

// ListAcceptedGuardians 返回老人已连接的监护人，最多 MaxGuardiansPerElderly 条。
// 上限在服务层截断，与SQL方言无关。
func (s *RequestService) ListAcceptedGuardians(elderlyID uint) ([]AcceptedGuardian, error) {
	var guardians []AcceptedGuardian
	err := s.DB.Table("guardian_requests").
		Select("guardian.id AS guardian_id, guardian.name AS guardian_name, guardian.relation").
		Joins("JOIN guardian ON guardian.id = guardian_requests.guardian_id").
		Where("guardian_requests.elderly_id = ? AND guardian_requests.status = ?", elderlyID, models.RequestStatusAccepted).
		Order("guardian_requests.id").
		Scan(&guardians).Error
	if err != nil {
		return nil, err
	}
	if len(guardians) > MaxGuardiansPerElderly {
		guardians = guardians[:MaxGuardiansPerElderly]
	}
	return guardians, nil
}

// IsGuardianAccepted 判断监护人与老人之间是否存在已接受的连接，
// 是位置/围栏读取接口的授权依据
func (s *RequestService) IsGuardianAccepted(guardianID, elderlyID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.GuardianRequest{}).
		Where("guardian_id = ? AND elderly_id = ? AND status = ?", guardianID, elderlyID, models.RequestStatusAccepted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
