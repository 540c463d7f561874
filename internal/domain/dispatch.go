package domain

// DetectKind infers an item's variant from the keys it carries. It is only
// used for items stored without a kind tag; the owning section is never
// consulted. Rules are evaluated in order because variants share key names.
//
// name+issuer is ambiguous between awards and certifications. Certification
// wins when a certification-only key is present, or when the item has a date
// and no description; everything else with a name is an award.
func DetectKind(fields map[string]any) ItemKind {
	has := func(keys ...string) bool {
		for _, k := range keys {
			if _, ok := fields[k]; !ok {
				return false
			}
		}
		return true
	}
	hasAny := func(keys ...string) bool {
		for _, k := range keys {
			if _, ok := fields[k]; ok {
				return true
			}
		}
		return false
	}

	switch {
	case has("degree", "institution"):
		return KindEducation
	case has("jobTitle", "company", "responsibilities"):
		return KindWorkExperience
	case has("category", "items"):
		return KindSkillCategory
	case has("title", "authors"):
		return KindPublication
	case has("name", "issuer"):
		if hasAny("expirationDate", "credentialId", "credentialUrl") {
			return KindCertification
		}
		if has("date") && !has("description") {
			return KindCertification
		}
		return KindAward
	case has("name", "date"):
		return KindAward
	case has("language", "proficiency"):
		return KindLanguage
	case has("organization", "role", "description"):
		return KindVolunteering
	case has("slug") && !hasAny("degree", "jobTitle"):
		return KindProject
	case has("title") && !hasAny("degree", "jobTitle"):
		return KindCustom
	}
	return KindUnknown
}
