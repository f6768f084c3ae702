package currency

import (
	"fmt"
	"math"

	"github.com/divan/num2words"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer = message.NewPrinter(language.English)
	titler  = cases.Title(language.English)
)

// Format renders an amount as a grouped peso string, e.g. "₱1,234,567.89".
func Format(amount float64) string {
	return printer.Sprintf("₱%.2f", amount)
}

// InWords renders an amount the way it is written on an official receipt,
// e.g. "One Thousand Two Hundred Pesos and 50/100 Centavos Only".
func InWords(amount float64) string {
	whole := int(amount)
	centavos := int(math.Round((amount - float64(whole)) * 100))

	words := titler.String(num2words.Convert(whole))
	if centavos > 0 {
		return fmt.Sprintf("%s Pesos and %02d/100 Centavos Only", words, centavos)
	}
	return fmt.Sprintf("%s Pesos Only", words)
}
