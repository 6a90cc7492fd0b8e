package grounding

import "strings"

// Where the passages of a Result came from.
const (
	SourceSearch   = "search"
	SourceKeyword  = "keyword"
	SourceFallback = "fallback"
)

// DefaultFallbackMessage is used when nothing was found and no keyword matched.
const DefaultFallbackMessage = "No relevant documents found for the query."

// Result is the outcome of resolving one query.
type Result struct {
	Found    bool
	Passages []string
	Source   string
	Err      error // search failure, for logging only; never shown to users
}

// Text joins the passages with a blank line between them.
func (r Result) Text() string {
	return strings.Join(r.Passages, "\n\n")
}

// KeywordFallback maps any of Keywords to Message. Entries are checked in order.
type KeywordFallback struct {
	Keywords []string
	Message  string
}

// Options configures a Resolver.
type Options struct {
	TopN             int
	FallbackMessage  string
	KeywordFallbacks []KeywordFallback
	CategoryPrefixes map[string]string
}

// DefaultCategoryPrefixes labels passages by document category.
func DefaultCategoryPrefixes() map[string]string {
	return map[string]string{
		"product":  "[สินค้า]",
		"helpdesk": "[ฝ่ายบริการลูกค้า]",
	}
}

// DefaultKeywordFallbacks is the built-in keyword table, product terms first.
func DefaultKeywordFallbacks() []KeywordFallback {
	return []KeywordFallback{
		{
			Keywords: []string{"สินค้า", "ราคา", "รุ่น", "product", "price"},
			Message:  "[สินค้า] ไม่พบข้อมูลสินค้าที่ตรงกับคำถามในระบบ กรุณาระบุชื่อหรือรหัสสินค้าให้ชัดเจนขึ้น",
		},
		{
			Keywords: []string{"ติดต่อ", "ช่วยเหลือ", "แจ้งปัญหา", "support", "help"},
			Message:  "[ฝ่ายบริการลูกค้า] ไม่พบข้อมูลที่เกี่ยวข้อง สามารถติดต่อเจ้าหน้าที่ฝ่ายบริการลูกค้าได้โดยตรง",
		},
	}
}
