package i18n

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/locales"
)

// "10 de maio às 09:20h"
func absolutePortuguese(cal locales.Translator, t time.Time) string {
	return fmt.Sprintf("%02d de %s às %02d:%02dh", t.Day(), cal.MonthWide(t.Month()), t.Hour(), t.Minute())
}

// "May 10 at 09:20"
func absoluteEnglish(cal locales.Translator, t time.Time) string {
	return fmt.Sprintf("%s %02d at %02d:%02d", cal.MonthWide(t.Month()), t.Day(), t.Hour(), t.Minute())
}

// Buckets follow the usual pt-BR "formatDistance" phrasing. Singular buckets
// end where the integer division would first produce 2.
var portugueseMagnitudes = []humanize.RelTimeMagnitude{
	{D: 30 * time.Second, Format: "%s menos de um minuto", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "%s 1 minuto", DivBy: time.Second},
	{D: 45 * time.Minute, Format: "%s %d minutos", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "%s cerca de 1 hora", DivBy: time.Second},
	{D: humanize.Day, Format: "%s cerca de %d horas", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "%s 1 dia", DivBy: time.Second},
	{D: humanize.Month, Format: "%s %d dias", DivBy: humanize.Day},
	{D: 2 * humanize.Month, Format: "%s cerca de 1 mês", DivBy: time.Second},
	{D: humanize.Year, Format: "%s %d meses", DivBy: humanize.Month},
	{D: 2 * humanize.Year, Format: "%s cerca de 1 ano", DivBy: time.Second},
	{D: humanize.LongTime, Format: "%s %d anos", DivBy: humanize.Year},
	{D: math.MaxInt64, Format: "%s muito tempo", DivBy: time.Second},
}
