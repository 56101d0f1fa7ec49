package entity

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User 用户实体
// 个人资料字段（电话、性别、学校信息）用于资料完整度门槛
type User struct {
	ID             string     `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email          string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash   string     `json:"-" gorm:"type:varchar(255);not null;column:password_hash"` // 不在 JSON 中暴露
	Name           string     `json:"name" gorm:"type:varchar(255)"`
	Phone          string     `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Sex            string     `json:"sex,omitempty" gorm:"type:varchar(20)"`
	SchoolType     string     `json:"school_type,omitempty" gorm:"type:varchar(50)"`
	SchoolName     string     `json:"school_name,omitempty" gorm:"type:varchar(255)"`
	SchoolDept     string     `json:"school_department,omitempty" gorm:"type:varchar(255);column:school_department"`
	SchoolMajor    string     `json:"school_major,omitempty" gorm:"type:varchar(255)"`
	SchoolGradYear int        `json:"school_graduation_year,omitempty" gorm:"column:school_graduation_year"`
	SchoolGradMon  int        `json:"school_graduation_month,omitempty" gorm:"column:school_graduation_month"`
	SelfPR         string     `json:"self_pr,omitempty" gorm:"type:text;column:self_pr"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// NewUser 创建新用户
func NewUser(email, name string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ProfileComplete 检查个人资料是否填写完整
// 完整度是核心功能的准入条件；性别与自我介绍为可选项
func (u *User) ProfileComplete() bool {
	return len(u.MissingProfileFields()) == 0
}

// MissingProfileFields 返回尚未填写的必填资料字段名
func (u *User) MissingProfileFields() []string {
	var missing []string
	fields := []struct {
		name string
		set  bool
	}{
		{"phone", u.Phone != ""},
		{"school_type", u.SchoolType != ""},
		{"school_name", u.SchoolName != ""},
		{"school_department", u.SchoolDept != ""},
		{"school_major", u.SchoolMajor != ""},
		{"school_graduation_year", u.SchoolGradYear > 0},
		{"school_graduation_month", u.SchoolGradMon > 0},
	}
	for _, f := range fields {
		if !f.set {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// SetPassword 设置并散列密码
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword 校验密码
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// TouchLogin 记录最近登录时间
func (u *User) TouchLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}
