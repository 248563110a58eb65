package event

import (
	"fmt"
	"time"
)

// Part names one component of a date entered by the user.
type Part string

const (
	PartDay   Part = "day"
	PartMonth Part = "month"
	PartYear  Part = "year"
)

// VerifyPart checks a single date component against today and returns the
// value to use. A nil month or year defaults to today's; the day is required.
//
// The day is only checked against [1,31]; whether it exists in the chosen
// month is left to NewDate.
func VerifyPart(value *int, part Part, today Date) (int, error) {
	switch part {
	case PartDay:
		if value == nil {
			return 0, &Error{Kind: KindUsage, Msg: "what day do you want?"}
		}
		if *value < 1 || *value > 31 {
			return 0, &Error{Kind: KindUsage, Msg: "one month has at best 31 days"}
		}
		return *value, nil
	case PartMonth:
		if value == nil {
			return int(today.Month), nil
		}
		if *value < 1 || *value > 12 {
			return 0, &Error{Kind: KindUsage, Msg: "one year has 12 months"}
		}
		return *value, nil
	case PartYear:
		if value == nil {
			return today.Year, nil
		}
		if *value < today.Year {
			return 0, &Error{Kind: KindUsage, Msg: fmt.Sprintf("year %d has been exceeded", *value)}
		}
		return *value, nil
	}
	return 0, &Error{Kind: KindUsage, Msg: fmt.Sprintf("type %q is not as expected", part)}
}

// ValidateParts verifies day, month and year and builds the concrete date.
func ValidateParts(day int, month, year *int, today Date) (Date, error) {
	d, err := VerifyPart(&day, PartDay, today)
	if err != nil {
		return Date{}, err
	}
	m, err := VerifyPart(month, PartMonth, today)
	if err != nil {
		return Date{}, err
	}
	y, err := VerifyPart(year, PartYear, today)
	if err != nil {
		return Date{}, err
	}
	return NewDate(y, time.Month(m), d)
}
