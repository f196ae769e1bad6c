package compliance

// NIST 800-53 control family names.
var controlFamilies = map[string]string{
	"AC": "Access Control",
	"AT": "Awareness and Training",
	"AU": "Audit and Accountability",
	"CA": "Assessment, Authorization, and Monitoring",
	"CM": "Configuration Management",
	"CP": "Contingency Planning",
	"IA": "Identification and Authentication",
	"IR": "Incident Response",
	"MA": "Maintenance",
	"MP": "Media Protection",
	"PE": "Physical and Environmental Protection",
	"PL": "Planning",
	"PM": "Program Management",
	"PS": "Personnel Security",
	"PT": "PII Processing and Transparency",
	"RA": "Risk Assessment",
	"SA": "System and Services Acquisition",
	"SC": "System and Communications Protection",
	"SI": "System and Information Integrity",
}

// criticalControls is the fixed quick-scan control set.
var criticalControls = []string{
	"AC-2", "AC-3", "IA-2", "AU-2", "AU-3", "CM-2", "CM-6",
	"SC-7", "SC-8", "SC-13", "SI-2", "SI-3", "SI-4",
}

// quickScanPassSet holds the controls the quick scan treats as passing.
var quickScanPassSet = map[string]bool{
	"AC-2": true, "IA-2": true, "AU-2": true, "SC-13": true,
}

// fullScanControls is the comprehensive control set for full scans.
var fullScanControls = []string{
	// Access Control
	"AC-1", "AC-2", "AC-3", "AC-4", "AC-5", "AC-6", "AC-7", "AC-8",
	// Identification and Authentication
	"IA-1", "IA-2", "IA-3", "IA-4", "IA-5", "IA-6", "IA-7", "IA-8",
	// System and Communications Protection
	"SC-1", "SC-2", "SC-3", "SC-4", "SC-5", "SC-7", "SC-8", "SC-13",
	// Audit and Accountability
	"AU-1", "AU-2", "AU-3", "AU-4", "AU-5", "AU-6", "AU-7", "AU-8",
	// Configuration Management
	"CM-1", "CM-2", "CM-3", "CM-4", "CM-5", "CM-6", "CM-7", "CM-8",
	// System and Information Integrity
	"SI-1", "SI-2", "SI-3", "SI-4", "SI-5", "SI-6", "SI-7", "SI-8",
}

// CommonControls lists the controls most assessments cover.
var CommonControls = []string{
	"AC-1", "AC-2", "AC-3", "AC-6", "AC-7", "AC-17", "AC-18", "AC-19", "AC-20",
	"AU-1", "AU-2", "AU-3", "AU-4", "AU-5", "AU-6", "AU-8", "AU-9", "AU-11", "AU-12",
	"CA-1", "CA-2", "CA-3", "CA-5", "CA-6", "CA-7", "CA-8", "CA-9",
	"CM-1", "CM-2", "CM-3", "CM-4", "CM-5", "CM-6", "CM-7", "CM-8", "CM-10", "CM-11",
	"CP-1", "CP-2", "CP-3", "CP-4", "CP-6", "CP-7", "CP-8", "CP-9", "CP-10",
	"IA-1", "IA-2", "IA-3", "IA-4", "IA-5", "IA-6", "IA-7", "IA-8", "IA-11",
	"IR-1", "IR-2", "IR-3", "IR-4", "IR-5", "IR-6", "IR-7", "IR-8",
	"RA-1", "RA-2", "RA-3", "RA-5",
	"SC-1", "SC-2", "SC-3", "SC-4", "SC-5", "SC-7", "SC-8", "SC-12", "SC-13", "SC-28",
	"SI-1", "SI-2", "SI-3", "SI-4", "SI-5", "SI-7", "SI-8", "SI-10", "SI-11", "SI-12",
}

// ControlGuidance is implementation guidance for one control.
type ControlGuidance struct {
	Title                  string   `json:"title"`
	Description            string   `json:"description"`
	ImplementationGuidance []string `json:"implementation_guidance"`
	CommonEvidence         []string `json:"common_evidence"`
}

var guidanceTemplates = map[string]ControlGuidance{
	"AC-2": {
		Title:       "Account Management",
		Description: "Manages information system accounts, including establishing, activating, modifying, reviewing, disabling, and removing accounts.",
		ImplementationGuidance: []string{
			"Establish account management procedures",
			"Define account types and access requirements",
			"Implement automated account management tools",
			"Regular account reviews and audits",
			"Document account management processes",
		},
		CommonEvidence: []string{
			"Account management policy",
			"Account provisioning procedures",
			"Account review reports",
			"Automated tooling documentation",
		},
	},
	"IA-2": {
		Title:       "Identification and Authentication (Organizational Users)",
		Description: "Uniquely identifies and authenticates organizational users.",
		ImplementationGuidance: []string{
			"Implement multi-factor authentication",
			"Use strong authentication mechanisms",
			"Integrate with organizational identity systems",
			"Regular authentication testing",
			"Document authentication procedures",
		},
		CommonEvidence: []string{
			"Authentication policy",
			"MFA implementation documentation",
			"Identity system integration",
			"Authentication testing results",
		},
	},
}

// GuidanceFor returns implementation guidance for a control, with a
// generic template for controls that have no curated entry.
func GuidanceFor(controlID string) ControlGuidance {
	if g, ok := guidanceTemplates[controlID]; ok {
		return g
	}
	return ControlGuidance{
		Title:                  "Control " + controlID,
		Description:            "Implementation guidance for " + controlID,
		ImplementationGuidance: []string{"Consult NIST 800-53 for detailed guidance"},
		CommonEvidence:         []string{"Control implementation documentation"},
	}
}

// FamilyName resolves a control family prefix (e.g. "AC") to its name.
func FamilyName(prefix string) (string, bool) {
	name, ok := controlFamilies[prefix]
	return name, ok
}
