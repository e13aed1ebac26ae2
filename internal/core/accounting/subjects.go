// Package accounting implements the chart-of-accounts registry, the keyword
// classifier and the double-entry draft generation/validation used by the
// journal pipeline. Everything here is pure: no I/O, no hidden state.
package accounting

// SubjectType is the top-level classification of an account subject.
type SubjectType string

const (
	TypeAsset     SubjectType = "資産"
	TypeLiability SubjectType = "負債"
	TypeEquity    SubjectType = "純資産"
	TypeRevenue   SubjectType = "収益"
	TypeExpense   SubjectType = "費用"
)

// Subject is one entry of the chart of accounts.
type Subject struct {
	Name     string      `json:"name"`
	Type     SubjectType `json:"type"`
	Category string      `json:"category"`
}

// Canonical subjects frequently used in small-business bookkeeping.
// The registry is configuration data, not a living entity: no mutation API.
var subjects = []Subject{
	// 資産
	{"現金", TypeAsset, "流動資産"},
	{"普通預金", TypeAsset, "流動資産"},
	{"当座預金", TypeAsset, "流動資産"},
	{"受取手形", TypeAsset, "流動資産"},
	{"売掛金", TypeAsset, "流動資産"},
	{"前払金", TypeAsset, "流動資産"},
	{"仮払金", TypeAsset, "流動資産"},
	{"貸付金", TypeAsset, "流動資産"},
	{"未収入金", TypeAsset, "流動資産"},
	{"商品", TypeAsset, "流動資産"},
	{"建物", TypeAsset, "固定資産"},
	{"車両運搬具", TypeAsset, "固定資産"},
	{"工具器具備品", TypeAsset, "固定資産"},
	{"土地", TypeAsset, "固定資産"},

	// 負債
	{"買掛金", TypeLiability, "流動負債"},
	{"支払手形", TypeLiability, "流動負債"},
	{"短期借入金", TypeLiability, "流動負債"},
	{"未払金", TypeLiability, "流動負債"},
	{"未払費用", TypeLiability, "流動負債"},
	{"前受金", TypeLiability, "流動負債"},
	{"預り金", TypeLiability, "流動負債"},
	{"仮受金", TypeLiability, "流動負債"},
	{"長期借入金", TypeLiability, "固定負債"},

	// 純資産
	{"資本金", TypeEquity, "資本"},
	{"利益剰余金", TypeEquity, "剰余金"},

	// 収益
	{"売上高", TypeRevenue, "営業収益"},
	{"受取利息", TypeRevenue, "営業外収益"},
	{"雑収入", TypeRevenue, "営業外収益"},

	// 費用
	{"仕入高", TypeExpense, "売上原価"},
	{"給料手当", TypeExpense, "販売費及び一般管理費"},
	{"法定福利費", TypeExpense, "販売費及び一般管理費"},
	{"福利厚生費", TypeExpense, "販売費及び一般管理費"},
	{"旅費交通費", TypeExpense, "販売費及び一般管理費"},
	{"通信費", TypeExpense, "販売費及び一般管理費"},
	{"消耗品費", TypeExpense, "販売費及び一般管理費"},
	{"水道光熱費", TypeExpense, "販売費及び一般管理費"},
	{"地代家賃", TypeExpense, "販売費及び一般管理費"},
	{"支払手数料", TypeExpense, "販売費及び一般管理費"},
	{"支払保険料", TypeExpense, "販売費及び一般管理費"},
	{"租税公課", TypeExpense, "販売費及び一般管理費"},
	{"減価償却費", TypeExpense, "販売費及び一般管理費"},
	{"広告宣伝費", TypeExpense, "販売費及び一般管理費"},
	{"接待交際費", TypeExpense, "販売費及び一般管理費"},
	{"会議費", TypeExpense, "販売費及び一般管理費"},
	{"新聞図書費", TypeExpense, "販売費及び一般管理費"},
	{"修繕費", TypeExpense, "販売費及び一般管理費"},
	{"車両費", TypeExpense, "販売費及び一般管理費"},
	{"雑費", TypeExpense, "販売費及び一般管理費"},
	{"支払利息", TypeExpense, "営業外費用"},
}

var subjectIndex = func() map[string]Subject {
	m := make(map[string]Subject, len(subjects))
	for _, s := range subjects {
		m[s.Name] = s
	}
	return m
}()

// Subjects returns the subject names in their canonical order.
func Subjects() []string {
	names := make([]string, len(subjects))
	for i, s := range subjects {
		names[i] = s.Name
	}
	return names
}

// Classify looks up a subject by name. Unknown names are reported via the
// boolean, never as an error: validators turn them into user-facing messages.
func Classify(name string) (Subject, bool) {
	s, ok := subjectIndex[name]
	return s, ok
}

// SubjectsByType returns the names of all subjects of the given type,
// preserving the canonical order.
func SubjectsByType(t SubjectType) []string {
	var names []string
	for _, s := range subjects {
		if s.Type == t {
			names = append(names, s.Name)
		}
	}
	return names
}
