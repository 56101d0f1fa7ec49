// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"report-ai-api/internal/domain/entity"
)

// UserResponse 用户响应
type UserResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Name           string     `json:"name"`
	Phone          string     `json:"phone,omitempty"`
	Sex            string     `json:"sex,omitempty"`
	SchoolType     string     `json:"school_type,omitempty"`
	SchoolName     string     `json:"school_name,omitempty"`
	SchoolDept     string     `json:"school_department,omitempty"`
	SchoolMajor    string     `json:"school_major,omitempty"`
	SchoolGradYear int        `json:"school_graduation_year,omitempty"`
	SchoolGradMon  int        `json:"school_graduation_month,omitempty"`
	SelfPR         string     `json:"self_pr,omitempty"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// UpdateProfileRequest 更新个人资料请求
type UpdateProfileRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=128"`
	Phone          *string `json:"phone" binding:"omitempty,max=50"`
	Sex            *string `json:"sex" binding:"omitempty,max=20"`
	SchoolType     *string `json:"school_type" binding:"omitempty,max=50"`
	SchoolName     *string `json:"school_name" binding:"omitempty,max=255"`
	SchoolDept     *string `json:"school_department" binding:"omitempty,max=255"`
	SchoolMajor    *string `json:"school_major" binding:"omitempty,max=255"`
	SchoolGradYear *int    `json:"school_graduation_year" binding:"omitempty,min=1900,max=2200"`
	SchoolGradMon  *int    `json:"school_graduation_month" binding:"omitempty,min=1,max=12"`
	SelfPR         *string `json:"self_pr" binding:"omitempty,max=2000"`
}

// ProfileStatusResponse 资料完整度响应
type ProfileStatusResponse struct {
	Complete      bool     `json:"complete"`
	MissingFields []string `json:"missing_fields,omitempty"`
}

// ToUserResponse 实体转换为响应
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Phone:          u.Phone,
		Sex:            u.Sex,
		SchoolType:     u.SchoolType,
		SchoolName:     u.SchoolName,
		SchoolDept:     u.SchoolDept,
		SchoolMajor:    u.SchoolMajor,
		SchoolGradYear: u.SchoolGradYear,
		SchoolGradMon:  u.SchoolGradMon,
		SelfPR:         u.SelfPR,
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// ApplyToUser 更新实体，nil 字段保持原值
func (r *UpdateProfileRequest) ApplyToUser(u *entity.User) {
	if r.Name != nil {
		u.Name = *r.Name
	}
	if r.Phone != nil {
		u.Phone = *r.Phone
	}
	if r.Sex != nil {
		u.Sex = *r.Sex
	}
	if r.SchoolType != nil {
		u.SchoolType = *r.SchoolType
	}
	if r.SchoolName != nil {
		u.SchoolName = *r.SchoolName
	}
	if r.SchoolDept != nil {
		u.SchoolDept = *r.SchoolDept
	}
	if r.SchoolMajor != nil {
		u.SchoolMajor = *r.SchoolMajor
	}
	if r.SchoolGradYear != nil {
		u.SchoolGradYear = *r.SchoolGradYear
	}
	if r.SchoolGradMon != nil {
		u.SchoolGradMon = *r.SchoolGradMon
	}
	if r.SelfPR != nil {
		u.SelfPR = *r.SelfPR
	}
	u.UpdatedAt = time.Now()
}
