package model

// User 用户模型
// 邮箱全局唯一，作为登录凭据
// 说明：Password 仅存储 bcrypt 哈希，不存储明文，也不参与任何 JSON 输出
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(128);not null" json:"name"`
	Email    string `gorm:"type:varchar(191);not null;uniqueIndex:idx_users_email" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// UserView 对外展示的用户信息（不含密码）
type UserView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Identity 登录成功后返回的身份信息
type Identity struct {
	ID   uint
	Name string
}
