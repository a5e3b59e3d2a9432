package domain

// CostCenter tags journal lines for departmental analysis. Lines reference
// it by Code.
type CostCenter struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	NameLocal   string `json:"nameLocal"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
