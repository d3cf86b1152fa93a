package constants

// Dataset names as they appear in the collected tenant snapshot.
const (
	DatasetUsers            = "users"
	DatasetGuests           = "guests"
	DatasetDevices          = "devices"
	DatasetCompliance       = "compliancePolicies"
	DatasetConfigProfiles   = "configurationProfiles"
	DatasetApplications     = "applications"
	DatasetVulnerabilities  = "vulnerabilities"
	DatasetServiceHealth    = "serviceHealth"
	DatasetLicenses         = "licenses"
	DatasetMailSecurity     = "mailSecurity"
	DatasetConditionalRules = "conditionalAccessPolicies"
)

// Response envelope keys shared by the REST handlers.
const (
	ResponseError = "error"
	FieldMessage  = "message"
)
