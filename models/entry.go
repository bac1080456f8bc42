package models

// Entry 收入记录（奉献、什一）
type Entry struct {
	LedgerFields
	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName 设置表名
func (Entry) TableName() string {
	return "entries"
}

// Fields 返回公共字段
func (e *Entry) Fields() *LedgerFields {
	return &e.LedgerFields
}
