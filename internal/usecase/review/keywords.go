package review

// DefaultAdKeywords is the sponsored-content vocabulary. A snippet whose
// cleaned text contains any of these substrings is dropped. Kept as data
// so the set can be tested and extended via configuration.
var DefaultAdKeywords = []string{
	// Korean sponsored-post markers
	"원고료",
	"지원",
	"체험단",
	"협찬",
	"서비스",
	"업체",
	"포스팅",
	"제작비",
	"광고",
	"리뷰 이벤트",
	"홍보",
	"프로모션",
	// English equivalents
	"sponsored",
	"collaboration",
	"press release",
	"promotion",
	"advertisement",
}
