package domain

import (
	"regexp"
	"strconv"
	"strings"
)

type Size string

const (
	SizeUnknown    Size = ""
	SizeStartup    Size = "startup"
	SizeSmall      Size = "small"
	SizeMedium     Size = "medium"
	SizeLarge      Size = "large"
	SizeEnterprise Size = "enterprise"
)

var namedSizes = map[string]Size{
	"startup":     SizeStartup,
	"micro":       SizeStartup,
	"seed":        SizeStartup,
	"small":       SizeSmall,
	"pyme":        SizeSmall,
	"smb":         SizeSmall,
	"medium":      SizeMedium,
	"mid":         SizeMedium,
	"mid-market":  SizeMedium,
	"midmarket":   SizeMedium,
	"mediana":     SizeMedium,
	"large":       SizeLarge,
	"grande":      SizeLarge,
	"enterprise":  SizeEnterprise,
	"corporate":   SizeEnterprise,
	"corporativo": SizeEnterprise,
}

var (
	headcountRe  = regexp.MustCompile(`\d+`)
	thousandsSep = strings.NewReplacer(",", "", ".", "")
)

// NormalizeSize maps a free-text size bucket ("1-10", "51-200", "1000+",
// "Enterprise") into the closed Size set. Employee ranges are classified by
// their upper bound.
func NormalizeSize(raw string) Size {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return SizeUnknown
	}
	if v, ok := namedSizes[s]; ok {
		return v
	}
	nums := headcountRe.FindAllString(thousandsSep.Replace(s), -1)
	if len(nums) == 0 {
		return SizeUnknown
	}
	n, err := strconv.Atoi(nums[len(nums)-1])
	if err != nil {
		return SizeUnknown
	}
	if strings.HasSuffix(s, "+") {
		n++
	}
	switch {
	case n <= 10:
		return SizeStartup
	case n <= 50:
		return SizeSmall
	case n <= 250:
		return SizeMedium
	case n <= 1000:
		return SizeLarge
	default:
		return SizeEnterprise
	}
}
