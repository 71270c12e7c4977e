package images

import (
	"sort"
	"strings"

	"github.com/containers/image/v5/docker/reference"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// DefaultTag is used when neither the values nor the chart provide a tag
const DefaultTag = "latest"

// Options selects which image blocks are read
type Options struct {
	Keys           []string // Blocks under .Values.image, e.g. "api"
	AppVersionKeys []string // Blocks whose empty tag falls back to the chart appVersion
}

// Extract returns the sorted, unique "repository:tag" references implied by
// chart defaults. Blocks without a repository are skipped. References that do
// not parse as image names are logged and still returned. Listed keys whose
// entry is not a mapping are logged and skipped.
func Extract(values *ImageValues, chart *Chart, opts Options, log logrus.FieldLogger) []string {
	if values == nil || len(values.Image) == 0 {
		return []string{}
	}

	appVersion := ""
	if chart != nil {
		appVersion = trimScalar(chart.AppVersion)
	}

	var images []string
	for _, key := range opts.Keys {
		block, err := values.Block(key)
		if err != nil {
			log.WithField("key", key).Warn(err)
			continue
		}
		if block == nil {
			continue
		}

		repo := strings.TrimSpace(block.Repository)
		tag := trimScalar(block.Tag)
		if tag == "" && lo.Contains(opts.AppVersionKeys, key) {
			tag = appVersion
		}
		if repo == "" {
			continue
		}
		if tag == "" {
			tag = DefaultTag
		}

		image := repo + ":" + tag
		if _, err := reference.ParseNormalizedNamed(image); err != nil {
			log.WithField("key", key).Warnf("invalid image reference %q: %v", image, err)
		}
		images = append(images, image)
	}

	images = lo.Uniq(images)
	sort.Strings(images)
	return images
}

func trimScalar(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
