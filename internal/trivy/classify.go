package trivy

import "strings"

// SanitizedPrefix is the form a prefix takes in result file names, where the
// scan workflow replaces "/" and ":" with "_"
func SanitizedPrefix(prefix string) string {
	return strings.NewReplacer("/", "_", ":", "_").Replace(prefix)
}

// IsVendor reports whether name refers to a first-party image, either as an
// image reference or as a sanitized file name
func IsVendor(name, vendorPrefix string) bool {
	if vendorPrefix == "" {
		return false
	}
	return strings.HasPrefix(name, vendorPrefix) || strings.HasPrefix(name, SanitizedPrefix(vendorPrefix))
}

// Classify splits counts into first-party and third-party images, keeping
// their order
func Classify(counts []ImageCount, vendorPrefix string) (vendor, thirdParty []ImageCount) {
	for _, c := range counts {
		if IsVendor(c.Name, vendorPrefix) {
			vendor = append(vendor, c)
		} else {
			thirdParty = append(thirdParty, c)
		}
	}
	return vendor, thirdParty
}

// Slug turns an image name into a short display name, e.g.
// langgenius/dify-api:1.10.1 becomes dify-api-1-10-1
func Slug(name, vendorPrefix string) string {
	sanitized := SanitizedPrefix(vendorPrefix)
	if !strings.ContainsAny(name, "/:") && sanitized != "" && strings.HasPrefix(name, sanitized) {
		rest := strings.ReplaceAll(strings.TrimPrefix(name, sanitized), "_", "-")
		if rest == "" {
			return name
		}
		return rest
	}

	repo, tag := name, "latest"
	if i := strings.LastIndex(name, ":"); i >= 0 {
		repo, tag = name[:i], name[i+1:]
	}
	base := repo
	if i := strings.LastIndex(repo, "/"); i >= 0 {
		base = repo[i+1:]
	}
	return strings.NewReplacer("/", "-", ".", "-").Replace(base + "-" + tag)
}
