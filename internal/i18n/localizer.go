package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"pasika/internal/core"
)

// Localizer formats dashboard text for one language.
type Localizer struct {
	tag        language.Tag
	locale     string
	printer    *message.Printer
	dateLayout string
}

// Localizer returns a formatter for tag. Tags outside the bundle are matched
// to the closest supported one.
func (b *Bundle) Localizer(tag language.Tag) *Localizer {
	matched, _ := b.Match(tag)
	locale := matched.String()
	layout, _ := b.Message(locale, "date.layout")
	return &Localizer{
		tag:        matched,
		locale:     locale,
		printer:    b.Printer(matched),
		dateLayout: layout,
	}
}

func (l *Localizer) Tag() language.Tag { return l.tag }

func (l *Localizer) Locale() string { return l.locale }

// T looks up key and formats it with args.
func (l *Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// Kg formats a weight in kilograms, e.g. "324 кг".
func (l *Localizer) Kg(v float64) string {
	return l.printer.Sprintf("unit.kg", number.Decimal(v, number.MaxFractionDigits(1)))
}

// KgPerHive formats an average yield, e.g. "27 кг/улей".
func (l *Localizer) KgPerHive(v float64) string {
	return l.printer.Sprintf("unit.kg_per_hive", number.Decimal(v, number.MaxFractionDigits(1)))
}

// Number formats a bare quantity.
func (l *Localizer) Number(v float64) string {
	return l.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(1)))
}

// Percent formats an integer percentage, e.g. "85%".
func (l *Localizer) Percent(v int) string {
	return l.printer.Sprintf("unit.percent", v)
}

// Date formats d with the locale's short layout. An empty date yields "".
func (l *Localizer) Date(d core.Date) string {
	if d.IsEmpty() {
		return ""
	}
	return d.Format(l.dateLayout)
}
