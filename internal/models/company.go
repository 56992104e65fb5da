package models

// Company mirrors a row of the companies table.
type Company struct {
	CompanyID string  `db:"company_id"`
	Name      string  `db:"name"`
	TaxID     *string `db:"tax_id"` // Nullable
	IsActive  bool    `db:"is_active"`
	AuditFields
}

// Entity mirrors a row of the entities table.
type Entity struct {
	EntityID   string `db:"entity_id"`
	CompanyID  string `db:"company_id"`
	Name       string `db:"name"`
	EntityType string `db:"entity_type"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}
