package finance

// Icon - отрисовываемая иконка счета. Конкретные иконки сравниваются по
// идентичности, поэтому существуют только как значения из реестра ниже.
type Icon interface {
	Glyph() string
	Title() string
}

type glyphIcon struct {
	glyph string
	title string
}

func (i *glyphIcon) Glyph() string { return i.glyph }
func (i *glyphIcon) Title() string { return i.title }

var (
	GooglePayIcon Icon = &glyphIcon{glyph: "G", title: "Google Pay"}
	PhonePeIcon   Icon = &glyphIcon{glyph: "P", title: "PhonePe"}
	BankIcon      Icon = &glyphIcon{glyph: "B", title: "Bank"}
)

// IconKind - закрытый набор известных иконок.
type IconKind uint8

const (
	IconGooglePay IconKind = iota
	IconPhonePe
	IconBank

	iconKindCount
)

// DefaultIconKind используется для неизвестных идентификаторов и иконок.
const DefaultIconKind = IconBank

var iconIDs = [...]string{
	IconGooglePay: "GooglePayIcon",
	IconPhonePe:   "PhonePeIcon",
	IconBank:      "BankIcon",
}

var iconValues = [...]Icon{
	IconGooglePay: GooglePayIcon,
	IconPhonePe:   PhonePeIcon,
	IconBank:      BankIcon,
}

// Таблицы обязаны покрывать каждый IconKind: иначе одна из длин массивов ниже
// станет отрицательной и пакет не соберется.
var (
	_ [len(iconIDs) - int(iconKindCount)]struct{}
	_ [int(iconKindCount) - len(iconIDs)]struct{}
	_ [len(iconValues) - int(iconKindCount)]struct{}
	_ [int(iconKindCount) - len(iconValues)]struct{}
)

var (
	DefaultIconID = iconIDs[DefaultIconKind]
	DefaultIcon   = iconValues[DefaultIconKind]
)

// IconKinds возвращает все известные виды иконок.
func IconKinds() []IconKind {
	kinds := make([]IconKind, 0, iconKindCount)
	for k := IconKind(0); k < iconKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ID возвращает стабильный строковый идентификатор иконки.
func (k IconKind) ID() string {
	if k >= iconKindCount {
		return DefaultIconID
	}
	return iconIDs[k]
}

// Icon возвращает иконку для вида.
func (k IconKind) Icon() Icon {
	if k >= iconKindCount {
		return DefaultIcon
	}
	return iconValues[k]
}

// IconKindOf ищет вид по иконке (сравнение по идентичности).
func IconKindOf(icon Icon) (IconKind, bool) {
	for k, v := range iconValues {
		if v == icon {
			return IconKind(k), true
		}
	}
	return DefaultIconKind, false
}

// ParseIconID ищет вид по строковому идентификатору.
func ParseIconID(id string) (IconKind, bool) {
	for k, v := range iconIDs {
		if v == id {
			return IconKind(k), true
		}
	}
	return DefaultIconKind, false
}
