package locale

import (
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Message keys shared by the stay and recurrence packages.
const (
	MsgDays           = "%d days"
	MsgOrdering       = "check-out must not be before check-in"
	MsgSpanTooLong    = "stay cannot exceed %d days"
	MsgDaily          = "Daily"
	MsgWeekly         = "Weekly"
	MsgWeeklyOn       = "Weekly: %s"
	MsgMonthly        = "Monthly"
	MsgMonthlyOn      = "Monthly: days %s"
	MsgEveryNDays     = "Every %d days"
	MsgNotConfigured  = "Not configured"
	MsgOccurrenceName = "%s dose"
)

var catalogue = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.AmericanEnglish))

	pt := language.BrazilianPortuguese
	set(b, pt, MsgDays, plural.Selectf(1, "%d",
		"=1", "%d diária",
		plural.Other, "%d diárias"))
	setString(b, pt, MsgOrdering, "Data de check-out deve ser posterior à data de check-in")
	setString(b, pt, MsgSpanTooLong, "Período não pode exceder %d dias")
	setString(b, pt, MsgDaily, "Diária")
	setString(b, pt, MsgWeekly, "Semanal")
	setString(b, pt, MsgWeeklyOn, "Semanal: %s")
	setString(b, pt, MsgMonthly, "Mensal")
	setString(b, pt, MsgMonthlyOn, "Mensal: dias %s")
	set(b, pt, MsgEveryNDays, plural.Selectf(1, "%d",
		"=1", "A cada %d dia",
		plural.Other, "A cada %d dias"))
	setString(b, pt, MsgNotConfigured, "Não configurada")
	setString(b, pt, MsgOccurrenceName, "Dose de %s")

	en := language.AmericanEnglish
	set(b, en, MsgDays, plural.Selectf(1, "%d",
		"=1", "%d day",
		plural.Other, "%d days"))
	set(b, en, MsgEveryNDays, plural.Selectf(1, "%d",
		"=1", "Every day",
		plural.Other, "Every %d days"))

	return b
}

func set(b *catalog.Builder, tag language.Tag, key string, msg catalog.Message) {
	if err := b.Set(tag, key, msg); err != nil {
		panic("locale: " + key + ": " + err.Error())
	}
}

func setString(b *catalog.Builder, tag language.Tag, key, msg string) {
	if err := b.SetString(tag, key, msg); err != nil {
		panic("locale: " + key + ": " + err.Error())
	}
}
