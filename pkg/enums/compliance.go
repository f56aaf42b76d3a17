package enums

import "fmt"

// ComplianceType categorizes a compliance record.
type ComplianceType string

const (
	ComplianceTypeBackgroundCheck ComplianceType = "background_check"
	ComplianceTypeDrugTest        ComplianceType = "drug_test"
	ComplianceTypeTraining        ComplianceType = "training"
	ComplianceTypeCertification   ComplianceType = "certification"
)

var validComplianceTypes = []ComplianceType{
	ComplianceTypeBackgroundCheck,
	ComplianceTypeDrugTest,
	ComplianceTypeTraining,
	ComplianceTypeCertification,
}

func (t ComplianceType) String() string {
	return string(t)
}

func (t ComplianceType) IsValid() bool {
	for _, candidate := range validComplianceTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

func ParseComplianceType(value string) (ComplianceType, error) {
	for _, candidate := range validComplianceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid compliance type %q", value)
}

// ComplianceStatus tracks verification state. Background-check statuses are
// mirrored onto the owning agent profile.
type ComplianceStatus string

const (
	ComplianceStatusPending  ComplianceStatus = "pending"
	ComplianceStatusApproved ComplianceStatus = "approved"
	ComplianceStatusRejected ComplianceStatus = "rejected"
	ComplianceStatusExpired  ComplianceStatus = "expired"
)

var validComplianceStatuses = []ComplianceStatus{
	ComplianceStatusPending,
	ComplianceStatusApproved,
	ComplianceStatusRejected,
	ComplianceStatusExpired,
}

func (s ComplianceStatus) String() string {
	return string(s)
}

func (s ComplianceStatus) IsValid() bool {
	for _, candidate := range validComplianceStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseComplianceStatus(value string) (ComplianceStatus, error) {
	for _, candidate := range validComplianceStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid compliance status %q", value)
}
