package model

import "golang.org/x/crypto/bcrypt"

/**
 * @file: model_user.go
 * @description: user model
 */

type User struct {
	BaseModel
	UserId    string `gorm:"column:user_id;not null;uniqueIndex" json:"userId"`
	Username  string `gorm:"column:username;not null;uniqueIndex" json:"username"`
	FirstName string `gorm:"column:first_name" json:"firstName"`
	LastName  string `gorm:"column:last_name" json:"lastName"`
	Password  string `gorm:"column:password" json:"-"`
	Email     string `gorm:"column:email" json:"email"`
	Phone     string `gorm:"column:phone" json:"phone"`
	RoleId    string `gorm:"column:role_id;not null;index" json:"roleId"` // 每个用户恰好一个角色
	IsEnabled int    `gorm:"column:is_enabled;not null;default:1" json:"isEnabled"`
}

func (User) TableName() string {
	return "t_user"
}

type Login struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResp struct {
	UserInfo UserInfo          `json:"userInfo"`
	Token    map[string]string `json:"token"`
}

type RefreshReq struct {
	RefreshToken string `json:"refreshToken"`
}

type UserInfo struct {
	UserId    string `json:"userId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	RoleId    string `json:"roleId"`
}

type AddUserReq struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	RoleId    string `json:"roleId"`
}

type UpdateUserReq struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	RoleId    *string `json:"roleId,omitempty"`
	IsEnabled *int    `json:"isEnabled,omitempty"`
}

// VerifyPassword 校验明文密码与存储的 bcrypt 哈希是否匹配
func VerifyPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// ToUserInfo 转换为对外用户信息
func ToUserInfo(u *User) UserInfo {
	return UserInfo{
		UserId:    u.UserId,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		RoleId:    u.RoleId,
	}
}
