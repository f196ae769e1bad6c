package assistant

import "strings"

// Domain knowledge tables backing the mode-specific system prompts.
// These mirror the service catalogs published by the platform.

var citizenServices = map[string][]string{
	"311_services": {
		"Street light repair", "Pothole reporting", "Noise complaints",
		"Parking violations", "Trash collection issues", "Water main breaks",
		"Park maintenance", "Building permits", "Business licenses",
	},
	"benefits": {
		"SNAP benefits", "Medicaid enrollment", "Housing assistance",
		"Unemployment benefits", "Social Security", "Veterans benefits",
		"Child care assistance", "Energy assistance", "Senior services",
	},
	"permits_licenses": {
		"Business license", "Building permit", "Special event permit",
		"Vendor permit", "Parking permit", "Construction permit",
		"Liquor license", "Food service license", "Professional license",
	},
}

var emergencyCategories = []string{
	"Natural disasters", "Public health emergencies", "Security threats",
	"Infrastructure failures", "Environmental hazards", "Civil unrest",
	"Cybersecurity incidents", "Supply chain disruptions",
}

var complianceFrameworks = []string{
	"NIST 800-53", "FedRAMP", "FISMA", "CMMC", "SOX", "HIPAA",
	"GDPR", "CCPA", "PCI DSS", "ISO 27001", "SOC 2",
}

var governmentAgencies = map[string][]string{
	"federal": {"DHS", "DOD", "HHS", "DOE", "DOJ", "State", "Treasury"},
	"state":   {"DMV", "Health Department", "Education", "Environmental"},
	"local":   {"Police", "Fire", "Public Works", "Planning", "Parks"},
}

// CitizenServices exposes the service catalog for the REST boundary.
func CitizenServices() map[string][]string {
	out := make(map[string][]string, len(citizenServices))
	for k, v := range citizenServices {
		out[k] = append([]string(nil), v...)
	}
	return out
}

var (
	keywords311      = []string{"street", "pothole", "noise", "parking", "trash", "water", "light"}
	keywordsBenefits = []string{"snap", "medicaid", "housing", "unemployment", "benefits", "assistance"}
	keywordsPermits  = []string{"permit", "license", "business", "building", "event"}

	keywordsHighPriority   = []string{"emergency", "urgent", "immediate", "safety", "health", "danger"}
	keywordsMediumPriority = []string{"deadline", "expires", "time-sensitive", "soon"}
)

// categorizeCitizenService maps an inquiry to a service category.
// Check order is fixed: 311 services, then benefits, then permits.
func categorizeCitizenService(message string) string {
	lower := strings.ToLower(message)

	if matchesAny(lower, keywords311) {
		return "311_services"
	}
	if matchesAny(lower, keywordsBenefits) {
		return "benefits"
	}
	if matchesAny(lower, keywordsPermits) {
		return "permits_licenses"
	}
	return "311_services"
}

// assessQueryPriority grades an inquiry as high, medium or normal.
func assessQueryPriority(message string) string {
	lower := strings.ToLower(message)

	if matchesAny(lower, keywordsHighPriority) {
		return "high"
	}
	if matchesAny(lower, keywordsMediumPriority) {
		return "medium"
	}
	return "normal"
}

func matchesAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
