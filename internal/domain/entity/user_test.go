package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeUser() *User {
	u := NewUser("taro@example.com", "山田太郎")
	u.Phone = "090-0000-0000"
	u.SchoolType = "大学"
	u.SchoolName = "東京大学"
	u.SchoolDept = "工学部"
	u.SchoolMajor = "情報工学"
	u.SchoolGradYear = 2027
	u.SchoolGradMon = 3
	return u
}

func TestUser_ProfileComplete(t *testing.T) {
	u := completeUser()
	assert.True(t, u.ProfileComplete())
	assert.Empty(t, u.MissingProfileFields())

	// sex and self_pr are optional and do not gate completeness
	u.Sex = ""
	u.SelfPR = ""
	assert.True(t, u.ProfileComplete())

	u.Phone = ""
	u.SchoolGradYear = 0
	assert.False(t, u.ProfileComplete())
	assert.Equal(t, []string{"phone", "school_graduation_year"}, u.MissingProfileFields())
}

func TestUser_Password(t *testing.T) {
	u := NewUser("taro@example.com", "山田太郎")
	require.NoError(t, u.SetPassword("s3cret-pass"))

	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)
	assert.True(t, u.CheckPassword("s3cret-pass"))
	assert.False(t, u.CheckPassword("wrong-pass"))
}
