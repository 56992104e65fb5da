package mapping

import (
	"github.com/SscSPs/amortization_manager/internal/core/domain"
	"github.com/SscSPs/amortization_manager/internal/models"
)

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// auditToModel copies the audit columns. Only amortizations persist Version;
// installment and company rows ignore it.
func auditToModel(d domain.AuditFields) models.AuditFields {
	return models.AuditFields(d)
}

// auditToDomain copies the audit columns, normalizing timestamps to UTC since
// pgx scans timestamptz in the local zone.
func auditToDomain(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt.UTC(),
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt.UTC(),
		LastUpdatedBy: m.LastUpdatedBy,
		Version:       m.Version,
	}
}

// ToModelAmortization converts a domain Amortization to a model Amortization.
// Installments are mapped separately.
func ToModelAmortization(d domain.Amortization) models.Amortization {
	return models.Amortization{
		AmortizationID:    d.ID,
		CompanyID:         d.CompanyID,
		EntityID:          d.EntityID,
		Reference:         d.Reference,
		Description:       d.Description,
		TotalAmount:       d.TotalAmount,
		PendingAmount:     d.PendingAmount,
		PaidAmount:        d.PaidAmount,
		TotalInstallments: d.TotalInstallments,
		PaidInstallments:  d.PaidInstallments,
		InstallmentAmount: d.InstallmentAmount,
		InterestRate:      d.InterestRate,
		TotalInterest:     d.TotalInterest,
		PaidInterest:      d.PaidInterest,
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		NextDueDate:       d.NextDueDate,
		Status:            string(d.Status),
		Method:            string(d.Method),
		Frequency:         string(d.Frequency),
		AutoPayment:       d.AutoPayment,
		SendNotifications: d.SendNotifications,
		SAPDocEntry:       d.External.DocEntry,
		SAPDocType:        optionalString(d.External.DocType),
		SAPBaseRef:        optionalString(d.External.BaseRef),
		IsActive:          d.IsActive,
		AuditFields:       auditToModel(d.AuditFields),
	}
}

// ToDomainAmortization converts a model Amortization to a domain Amortization without installments.
func ToDomainAmortization(m models.Amortization) domain.Amortization {
	return domain.Amortization{
		ID:                m.AmortizationID,
		CompanyID:         m.CompanyID,
		EntityID:          m.EntityID,
		Reference:         m.Reference,
		Description:       m.Description,
		TotalAmount:       m.TotalAmount,
		PendingAmount:     m.PendingAmount,
		PaidAmount:        m.PaidAmount,
		TotalInstallments: m.TotalInstallments,
		PaidInstallments:  m.PaidInstallments,
		InstallmentAmount: m.InstallmentAmount,
		InterestRate:      m.InterestRate,
		TotalInterest:     m.TotalInterest,
		PaidInterest:      m.PaidInterest,
		StartDate:         m.StartDate,
		EndDate:           m.EndDate,
		NextDueDate:       m.NextDueDate,
		Status:            domain.AmortizationStatus(m.Status),
		Method:            domain.AmortizationMethod(m.Method),
		Frequency:         domain.Frequency(m.Frequency),
		AutoPayment:       m.AutoPayment,
		SendNotifications: m.SendNotifications,
		External: domain.ExternalReference{
			DocEntry: m.SAPDocEntry,
			DocType:  stringValue(m.SAPDocType),
			BaseRef:  stringValue(m.SAPBaseRef),
		},
		IsActive:    m.IsActive,
		AuditFields: auditToDomain(m.AuditFields),
	}
}

// ToModelInstallment converts a domain Installment to a model Installment
func ToModelInstallment(d domain.Installment) models.Installment {
	return models.Installment{
		InstallmentID:     d.ID,
		AmortizationID:    d.AmortizationID,
		InstallmentNumber: d.Number,
		DueDate:           d.DueDate,
		PrincipalAmount:   d.PrincipalAmount,
		InterestAmount:    d.InterestAmount,
		TotalAmount:       d.TotalAmount,
		RemainingBalance:  d.RemainingBalance,
		PaidAmount:        d.PaidAmount,
		PaymentDate:       d.PaymentDate,
		Status:            string(d.Status),
		LateFee:           d.LateFee,
		Notes:             d.Notes,
		SAPPaymentEntry:   d.SAPPaymentEntry,
		ExternalReference: d.ExternalReference,
		AuditFields:       auditToModel(d.AuditFields),
	}
}

// ToDomainInstallment converts a model Installment to a domain Installment
func ToDomainInstallment(m models.Installment) domain.Installment {
	return domain.Installment{
		ID:                m.InstallmentID,
		AmortizationID:    m.AmortizationID,
		Number:            m.InstallmentNumber,
		DueDate:           m.DueDate,
		PrincipalAmount:   m.PrincipalAmount,
		InterestAmount:    m.InterestAmount,
		TotalAmount:       m.TotalAmount,
		RemainingBalance:  m.RemainingBalance,
		PaidAmount:        m.PaidAmount,
		PaymentDate:       m.PaymentDate,
		Status:            domain.InstallmentStatus(m.Status),
		LateFee:           m.LateFee,
		Notes:             m.Notes,
		SAPPaymentEntry:   m.SAPPaymentEntry,
		ExternalReference: m.ExternalReference,
		AuditFields:       auditToDomain(m.AuditFields),
	}
}

// ToDomainInstallmentSlice converts a slice of model Installments to a slice of domain Installments
func ToDomainInstallmentSlice(ms []models.Installment) []domain.Installment {
	ds := make([]domain.Installment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInstallment(m)
	}
	return ds
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		TaxID:       stringValue(m.TaxID),
		IsActive:    m.IsActive,
		AuditFields: auditToDomain(m.AuditFields),
	}
}

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		TaxID:       optionalString(d.TaxID),
		IsActive:    d.IsActive,
		AuditFields: auditToModel(d.AuditFields),
	}
}

// ToModelEntity converts a domain Entity to a model Entity
func ToModelEntity(d domain.Entity) models.Entity {
	return models.Entity{
		EntityID:    d.EntityID,
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		EntityType:  string(d.EntityType),
		IsActive:    d.IsActive,
		AuditFields: auditToModel(d.AuditFields),
	}
}

// ToDomainEntity converts a model Entity to a domain Entity
func ToDomainEntity(m models.Entity) domain.Entity {
	return domain.Entity{
		EntityID:    m.EntityID,
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		EntityType:  domain.EntityType(m.EntityType),
		IsActive:    m.IsActive,
		AuditFields: auditToDomain(m.AuditFields),
	}
}
