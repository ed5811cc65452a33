package normalize

import "regexp"

// FallbackCategory is the bucket for text with no extractable category ("other event").
const FallbackCategory = "其他事件"

var (
	categoryPattern   = regexp.MustCompile(`\p{Han}{2}事件`)
	canonicalCategory = regexp.MustCompile(`^\p{Han}{2}事件$`)
)

// Category reduces free-text category descriptions to a canonical label: the leftmost
// run of two ideographs followed by 事件. Anything else collapses to FallbackCategory.
//
//	Category("病人跌倒造成跌倒事件") == "跌倒事件"
//	Category("未填寫") == "其他事件"
func Category(raw string) string {
	s := Text(raw)
	if s == "" {
		return FallbackCategory
	}
	if m := categoryPattern.FindString(s); m != "" {
		return m
	}
	return FallbackCategory
}

// IsCanonicalCategory reports whether s is already a canonical label.
func IsCanonicalCategory(s string) bool { return canonicalCategory.MatchString(s) }
