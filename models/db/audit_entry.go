package dbmodels

// AuditEntry - журнал действий, только добавление.
// Ссылки на сотрудника и заявку необязательные: системные записи живут
// без актора, журнал переживает удаление заявки.
type AuditEntry struct {
	BaseModel
	PersonID  *string `gorm:"type:varchar(36);index"`
	Person    *Person `gorm:"foreignKey:PersonID"`
	RequestID *string `gorm:"type:varchar(36);index"`
	Action    string
}
