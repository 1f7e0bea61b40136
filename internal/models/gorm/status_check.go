package gorm

// StatusCheckDocument is the row form of a status check document.
// PK is the store's internal identifier and never leaves the repository.
type StatusCheckDocument struct {
	PK         uint   `gorm:"column:pk;primaryKey;autoIncrement"`
	DocID      string `gorm:"column:id;type:varchar(36);uniqueIndex;not null"`
	ClientName string `gorm:"column:client_name;not null"`
	Timestamp  string `gorm:"column:timestamp;type:varchar(40);not null"`
}

// TableName specifies the table name for GORM
func (StatusCheckDocument) TableName() string {
	return "status_checks"
}
