// Package format renders amounts for display.
package format

import (
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
)

// ilsTemplate places the symbol after the amount as the he-IL locale does.
const ilsTemplate = "1 $"

// ilsFormatter は go-money の ILS 定義を小数0桁で使います。
var ilsFormatter = func() *money.Formatter {
	c := money.GetCurrency(money.ILS)
	return money.NewFormatter(0, c.Decimal, c.Thousand, c.Grapheme, ilsTemplate)
}()

// ILS rounds v to whole shekels, e.g. "50,000 ₪" or "-1,235 ₪".
func ILS(v float64) string {
	return ilsFormatter.Format(int64(math.Round(v)))
}

// Percent renders v with two decimals and an explicit plus sign for
// non-negative values, e.g. "+12.34%" or "-3.10%".
func Percent(v float64) string {
	sign := ""
	if v >= 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, v)
}
