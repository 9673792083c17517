package model

// FriendStatus 好友关系状态
type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "pending"
	FriendStatusAccepted FriendStatus = "accepted"
	// FriendStatusRejected 已建模，当前没有接口会进入该状态
	FriendStatusRejected FriendStatus = "rejected"
)

// FriendEdge 好友关系（有向边）
// UserID 为发起方，FriendID 为接收方；同一有序对最多一条记录
// 接受后关系视为双向
type FriendEdge struct {
	ID       uint         `gorm:"primaryKey"`
	UserID   uint         `gorm:"not null;uniqueIndex:idx_friends_pair,priority:1"`
	FriendID uint         `gorm:"not null;uniqueIndex:idx_friends_pair,priority:2;index"`
	Status   FriendStatus `gorm:"type:varchar(16);not null;default:'pending';check:chk_friends_status,status IN ('pending','accepted','rejected')"`

	Requester User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Recipient User `gorm:"foreignKey:FriendID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (FriendEdge) TableName() string { return "friends" }
