package trivy

// Report is the subset of a Trivy JSON scan result chartgrd reads
type Report struct {
	ArtifactName string   `json:"ArtifactName"`
	ArtifactType string   `json:"ArtifactType"`
	Results      []Result `json:"Results"`
}

// Result holds the findings for one scan target inside an image
type Result struct {
	Target          string          `json:"Target"`
	Class           string          `json:"Class"`
	Vulnerabilities []Vulnerability `json:"Vulnerabilities"`
}

// Vulnerability is a single finding
type Vulnerability struct {
	VulnerabilityID  string `json:"VulnerabilityID"`
	PkgName          string `json:"PkgName"`
	InstalledVersion string `json:"InstalledVersion"`
	FixedVersion     string `json:"FixedVersion"`
	Severity         string `json:"Severity"`
}

// ImageCount is the number of critical and high findings for one image
type ImageCount struct {
	Name     string
	Critical int
	High     int
}
