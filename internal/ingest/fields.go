package ingest

// Field is one canonical column every normalized record exposes.
type Field int

const (
	FieldID Field = iota
	FieldDate
	FieldDepartment
	FieldCategory
	FieldLocation
	FieldDescription
	FieldSeverity
	FieldVictim
)

// Fields lists the canonical fields in output order.
var Fields = []Field{
	FieldID, FieldDate, FieldDepartment, FieldCategory,
	FieldLocation, FieldDescription, FieldSeverity, FieldVictim,
}

func (f Field) String() string {
	switch f {
	case FieldID:
		return "id"
	case FieldDate:
		return "date"
	case FieldDepartment:
		return "department"
	case FieldCategory:
		return "category"
	case FieldLocation:
		return "location"
	case FieldDescription:
		return "description"
	case FieldSeverity:
		return "severity"
	case FieldVictim:
		return "victim"
	default:
		return "unknown"
	}
}

// Label is the column title used for the field in exports and views.
func (f Field) Label() string {
	switch f {
	case FieldID:
		return "單號"
	case FieldDate:
		return "日期"
	case FieldDepartment:
		return "發生單位"
	case FieldCategory:
		return "事件類別"
	case FieldLocation:
		return "發生地點"
	case FieldDescription:
		return "事件描述"
	case FieldSeverity:
		return "嚴重程度"
	case FieldVictim:
		return "受影響對象"
	default:
		return ""
	}
}

// SourceYearLabel titles the sheet-of-origin column.
const SourceYearLabel = "年度來源"

const (
	newerCategoryColumn  = "新事件類別"
	legacyCategoryColumn = "事件類別"
)

// synonyms maps each field to the source column titles that carry it, most preferred
// first. Category lists both columns but is resolved per record; see ColumnSet.Category.
var synonyms = map[Field][]string{
	FieldID:          {"單號"},
	FieldDate:        {"通報日期", "日期", "發生日期"},
	FieldDepartment:  {"發生部門", "發生單位", "通報部門"},
	FieldCategory:    {newerCategoryColumn, legacyCategoryColumn},
	FieldLocation:    {"發生地點", "事件發生地點"},
	FieldDescription: {"事件描述", "事件經過"},
	FieldSeverity:    {"嚴重程度", "傷害程度", "事件嚴重度"},
	FieldVictim:      {"受影響對象", "事情發生後受影響的對象"},
}

// Synonyms returns a copy of the priority-ordered source titles for f.
func Synonyms(f Field) []string {
	return append([]string(nil), synonyms[f]...)
}
