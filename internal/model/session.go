package model

// Session 本地会话记录，只保存最近一次连接的钱包地址
// 仅作提示用途，任何时候都以链上重新解析的账户为准
type Session struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Address string `json:"address" gorm:"not null"`
}

// TableName 指定表名
func (Session) TableName() string {
	return "session"
}
