package core

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// WordsFallback is returned by AmountToWords when conversion fails.
const WordsFallback = "Amount in words conversion error"

// maxWordsAmount bounds the whole part so the int64 arithmetic below cannot overflow.
const maxWordsAmount = 1e15

var (
	onesWords = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten",
		"Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tensWords = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// AmountToWords spells a rupee amount on the Indian scale:
//
//	2360.50 -> "Two Thousand Three Hundred and Sixty Rupees and Fifty Paise Only"
//
// Amounts <= 0 return the bare word "Zero" without the "Rupees ... Only" suffix.
// The paise clause is omitted when the rounded paise part is zero. A conversion
// failure is logged and answered with WordsFallback instead of an error: the words
// line is cosmetic and must not stop a document from being generated.
func AmountToWords(amount float64) (words string) {
	defer func() {
		if rv := recover(); rv != nil {
			log.Warn().Interface("panic", rv).Float64("amount", amount).Msg("amount to words failed")
			words = WordsFallback
		}
	}()

	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount >= maxWordsAmount {
		log.Warn().Str("amount", fmt.Sprint(amount)).Msg("amount to words: value out of range")
		return WordsFallback
	}
	if amount <= 0 {
		return "Zero"
	}

	whole := math.Floor(amount)
	paise := int64(math.Round((amount - whole) * 100))

	wholeWords := numberToWords(int64(whole))
	if wholeWords == "" {
		wholeWords = "Zero"
	}
	words = wholeWords + " Rupees"
	if paise > 0 {
		words += " and " + numberToWords(paise) + " Paise"
	}
	return words + " Only"
}

// numberToWords spells n using hundred, thousand, lakh and crore groups.
// Only the hundred group is joined to its remainder with "and".
func numberToWords(n int64) string {
	switch {
	case n < 0:
		panic(fmt.Sprintf("negative group %d", n))
	case n < 20:
		return onesWords[n]
	case n < 100:
		s := tensWords[n/10]
		if n%10 != 0 {
			s += " " + onesWords[n%10]
		}
		return s
	case n < 1000:
		s := onesWords[n/100] + " Hundred"
		if n%100 != 0 {
			s += " and " + numberToWords(n%100)
		}
		return s
	case n < 100000:
		return scaled(n, 1000, "Thousand")
	case n < 10000000:
		return scaled(n, 100000, "Lakh")
	default:
		return scaled(n, 10000000, "Crore")
	}
}

func scaled(n, unit int64, name string) string {
	s := numberToWords(n/unit) + " " + name
	if n%unit != 0 {
		s += " " + numberToWords(n%unit)
	}
	return s
}
