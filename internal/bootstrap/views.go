package bootstrap

import (
	"fmt"
	"log"
	"strings"

	"github.com/tenantscope/dashboard/internal/application/services"
	"github.com/tenantscope/dashboard/internal/domain/models"
	"github.com/tenantscope/dashboard/pkg/constants"
	"github.com/tenantscope/dashboard/pkg/markup"
	"github.com/tenantscope/dashboard/pkg/record"
)

// RegisterBuiltinViews seeds the view registry with the standard dashboard
// pages. Each definition binds a snapshot dataset to its column layout.
func RegisterBuiltinViews(registry *services.ViewRegistry) error {
	log.Println("🔧 Registering builtin views...")

	views := []models.ViewDefinition{
		usersView(),
		guestsView(),
		devicesView(),
		compliancePoliciesView(),
		configurationProfilesView(),
		applicationsView(),
		vulnerabilitiesView(),
		serviceHealthView(),
		licensesView(),
		mailSecurityView(),
		conditionalAccessView(),
	}

	for _, view := range views {
		if err := registry.Register(view); err != nil {
			return fmt.Errorf("failed to register view %q: %w", view.Name, err)
		}
	}

	log.Printf("📦 Registered %d builtin views", len(views))
	return nil
}

func notSortable() *bool {
	f := false
	return &f
}

// badge wraps a value in a colored pill. The class suffix is derived from
// the value itself, lowercased, so CSS can target e.g. .badge-critical.
func badge(value interface{}, _ record.Record) string {
	text := record.Stringify(value)
	if text == "" {
		return constants.PlaceholderCell
	}
	class := "badge badge-" + strings.ToLower(strings.ReplaceAll(text, " ", "-"))
	return markup.Tag("span", class, text)
}

// yesNo renders booleans as Yes/No regardless of how the collector encoded
// them (bool, "true", 1).
func yesNo(value interface{}, _ record.Record) string {
	if value == nil {
		return constants.PlaceholderCell
	}
	if record.Truthy(value) {
		return constants.BoolTrueLabel
	}
	return constants.BoolFalseLabel
}

func usersView() models.ViewDefinition {
	return models.ViewDefinition{
		Name:    "users",
		Title:   "Users",
		Dataset: constants.DatasetUsers,
		Columns: []models.ColumnSpec{
			{Key: "displayName", Label: "Name"},
			{Key: "userPrincipalName", Label: "UPN"},
			{Key: "department", Label: "Department", Filterable: true},
			{Key: "jobTitle", Label: "Job Title", Filterable: true},
			{Key: "accountEnabled", Label: "Enabled", Filterable: true, Formatter: yesNo},
			{Key: "mfaState", Label: "MFA", Filterable: true, Formatter: badge},
			{Key: "assignedLicenses", Label: "Licenses", Sortable: notSortable(), Filterable: true},
			{Key: "lastSignIn", Label: "Last Sign-in"},
		},
		SearchFields:   []string{"displayName", "userPrincipalName", "mail", "department"},
		DefaultSortKey: "displayName",
		RowKey:         "id",
	}
}

func guestsView() models.ViewDefinition {
	return models.ViewDefinition{
		Name:    "guests",
		Title:   "Guest Accounts",
		Dataset: constants.DatasetGuests,
		Columns: []models.ColumnSpec{
			{Key: "displayName", Label: "Name"},
			{Key: "mail", Label: "Email"},
			{Key: "companyName", Label: "Company", Filterable: true},
			{Key: "externalUserState", Label: "Invite State", Filterable: true, Formatter: badge},
			{Key: "createdDateTime", Label: "Invited"},
			{Key: "lastSignIn", Label: "Last Sign-in"},
		},
		SearchFields:    []string{"displayName", "mail", "companyName"},
		DefaultSortKey:  "createdDateTime",
		DefaultSortDesc: true,
		RowKey:          "id",
	}
}

func devicesView() models.ViewDefinition {
	return models.ViewDefinition{
		Name:    "devices",
		Title:   "Managed Devices",
		Dataset: constants.DatasetDevices,
		Columns: []models.ColumnSpec{
			{Key: "deviceName", Label: "Device"},
			{Key: "userPrincipalName", Label: "Primary User"},
			{Key: "operatingSystem", Label: "OS", Filterable: true},
			{Key: "osVersion", Label: "OS Version"},
			{Key: "complianceState", Label: "Compliance", Filterable: true, Formatter: badge},
			{Key: "isEncrypted", Label: "Encrypted", Filterable: true, Formatter: yesNo},
			{Key: "lastSyncDateTime", Label: "Last Sync"},
		},
		SearchFields:   []string{"deviceName", "userPrincipalName", "serialNumber"},
		DefaultSortKey: "deviceName",
		RowKey:         "id",
		RowClass: func(rec record.Record) string {
			if record.Stringify(rec.Resolve("complianceState")) == "noncompliant" {
				return "row-noncompliant"
			}
			return ""
		},
	}
}

func compliancePoliciesView() models.ViewDefinition {
	return models.ViewDefinition{
		Name:    "compliancePolicies",
		Title:   "Compliance Policies",
		Dataset: constants.DatasetCompliance,
		Columns: []models.ColumnSpec{
			{Key: "displayName", Label: "Policy"},
			{Key: "platform", Label: "Platform", Filterable: true},
			{Key: "assignedGroups", Label: "Assigned To", Sortable: notSortable()},
			{Key: "compliantCount", Label: "Compliant"},
			{Key: "noncompliantCount", Label: "Noncompliant"},
			{Key: "lastModifiedDateTime", Label: "Modified"},
		},
		SearchFields:   []string{"displayName", "platform"},
		DefaultSortKey: "displayName",
		RowKey:         "id",
	}
}

func configurationProfilesView() models.ViewDefinition {
	return models.ViewDefinition{
		Name:    "configurationProfiles",
		Title:   "Configuration Profiles",
		Dataset: constants.DatasetConfigProfiles,
		Columns: []models.ColumnSpec{
			{Key: "displayName", Label: "Profile"},
			{Key: "platform", Label: "Platform", Filterable: true},
			{Key: "profileType", Label: "Type", Filterable: true},
			{Key: "assignedGroups", Label: "Assigned To", Sortable: notSortable()},
			{Key: "lastModifiedDateTime", Label: "Modified"},
		},
		SearchFields:   []string{"displayName", "platform", "profileType"},
		DefaultSortKey: "displayName",
		RowKey:         "id",
	}
}

func applicationsView() models.ViewDefinition {
	return models.ViewDefinition{
		Name:    "applications",
		Title:   "Applications",
		Dataset: constants.DatasetApplications,
		Columns: []models.ColumnSpec{
			{Key: "displayName", Label: "Application"},
			{Key: "publisher", Label: "Publisher", Filterable: true},
			{Key: "platform", Label: "Platform", Filterable: true},
			{Key: "version", Label: "Version"},
			{Key: "installCount", Label: "Installs"},
			{Key: "assignmentType", Label: "Assignment", Filterable: true, Formatter: badge},
		},
		SearchFields:   []string{"displayName", "publisher"},
		DefaultSortKey: "displayName",
		RowKey:         "id",
	}
}

func vulnerabilitiesView() models.ViewDefinition {
	return models.ViewDefinition{
		Name:    "vulnerabilities",
		Title:   "Vulnerabilities",
		Dataset: constants.DatasetVulnerabilities,
		Columns: []models.ColumnSpec{
			{Key: "cveId", Label: "CVE", ClassName: "mono"},
			{Key: "name", Label: "Title"},
			{Key: "severity", Label: "Severity", Filterable: true, Formatter: badge},
			{Key: "cvssScore", Label: "CVSS"},
			{Key: "exposedDevices", Label: "Exposed Devices"},
			{Key: "publishedOn", Label: "Published"},
		},
		SearchFields:    []string{"cveId", "name"},
		DefaultSortKey:  "cvssScore",
		DefaultSortDesc: true,
		RowKey:          "cveId",
	}
}

func serviceHealthView() models.ViewDefinition {
	return models.ViewDefinition{
		Name:    "serviceHealth",
		Title:   "Service Health",
		Dataset: constants.DatasetServiceHealth,
		Columns: []models.ColumnSpec{
			{Key: "service", Label: "Service"},
			{Key: "status", Label: "Status", Filterable: true, Formatter: badge},
			{Key: "activeIssues", Label: "Active Issues"},
			{Key: "lastIncidentAt", Label: "Last Incident"},
		},
		SearchFields:   []string{"service"},
		DefaultSortKey: "service",
		RowKey:         "service",
	}
}

func licensesView() models.ViewDefinition {
	return models.ViewDefinition{
		Name:    "licenses",
		Title:   "Licenses",
		Dataset: constants.DatasetLicenses,
		Columns: []models.ColumnSpec{
			{Key: "skuPartNumber", Label: "SKU", ClassName: "mono"},
			{Key: "displayName", Label: "Product"},
			{Key: "totalUnits", Label: "Total"},
			{Key: "consumedUnits", Label: "Assigned"},
			{Key: "availableUnits", Label: "Available"},
		},
		SearchFields:   []string{"skuPartNumber", "displayName"},
		DefaultSortKey: "displayName",
		RowKey:         "skuPartNumber",
	}
}

func mailSecurityView() models.ViewDefinition {
	return models.ViewDefinition{
		Name:    "mailSecurity",
		Title:   "Mail Security",
		Dataset: constants.DatasetMailSecurity,
		Columns: []models.ColumnSpec{
			{Key: "domain", Label: "Domain"},
			{Key: "spfConfigured", Label: "SPF", Filterable: true, Formatter: yesNo},
			{Key: "dkimEnabled", Label: "DKIM", Filterable: true, Formatter: yesNo},
			{Key: "dmarcPolicy", Label: "DMARC", Filterable: true, Formatter: badge},
			{Key: "isDefault", Label: "Default", Formatter: yesNo},
		},
		SearchFields:   []string{"domain"},
		DefaultSortKey: "domain",
		RowKey:         "domain",
	}
}

func conditionalAccessView() models.ViewDefinition {
	return models.ViewDefinition{
		Name:    "conditionalAccessPolicies",
		Title:   "Conditional Access",
		Dataset: constants.DatasetConditionalRules,
		Columns: []models.ColumnSpec{
			{Key: "displayName", Label: "Policy"},
			{Key: "state", Label: "State", Filterable: true, Formatter: badge},
			{Key: "includedUsers", Label: "Included Users", Sortable: notSortable()},
			{Key: "grantControls", Label: "Grant Controls", Sortable: notSortable()},
			{Key: "modifiedDateTime", Label: "Modified"},
		},
		SearchFields:   []string{"displayName"},
		DefaultSortKey: "displayName",
		RowKey:         "id",
	}
}
