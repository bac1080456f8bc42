package models

// Exit 支出记录，Type 为交易类型，Comments 必填
type Exit struct {
	LedgerFields
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName 设置表名
func (Exit) TableName() string {
	return "exits"
}

// Fields 返回公共字段
func (e *Exit) Fields() *LedgerFields {
	return &e.LedgerFields
}
