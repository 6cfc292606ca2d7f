package casefile

import (
	"fmt"
	"regexp"
	"strconv"
)

// Source files are often named "MM.YY, Company ..." (or "MM.YY_company"
// once sanitized).
var filenameDate = regexp.MustCompile(`^(\d{2})\.(\d{2})[,_]`)

// ResolveDate returns the case's issue date and year. The first available
// source wins: an explicit date_issued of at least seven characters, a
// dated filename prefix, then the case_date object. Derived dates use the
// fifteenth of the month.
func ResolveDate(info *CaseInfo, filename string) (string, int, error) {
	if info == nil {
		return "", 0, fmt.Errorf("%w: case_info", ErrMissingField)
	}

	date := info.DateIssued
	if len(date) < 7 {
		date = dateFromFilename(filename)
	}
	if date == "" {
		date = dateFromCaseDate(info.CaseDate)
	}
	if date == "" {
		return "", 0, fmt.Errorf("%s: %w", filename, ErrNoDate)
	}

	year, err := strconv.Atoi(date[:min(4, len(date))])
	if err != nil {
		return "", 0, fmt.Errorf("%s: unparseable date %q: %w", filename, date, ErrNoDate)
	}
	return date, year, nil
}

func dateFromFilename(filename string) string {
	match := filenameDate.FindStringSubmatch(filename)
	if match == nil {
		return ""
	}
	month, _ := strconv.Atoi(match[1])
	short, _ := strconv.Atoi(match[2])
	if month < 1 || month > 12 {
		return ""
	}
	year := 2000 + short
	if short >= 90 {
		year = 1900 + short
	}
	return fmt.Sprintf("%d-%02d-15", year, month)
}

func dateFromCaseDate(cd *CaseDate) string {
	if cd == nil {
		return ""
	}
	year, okYear := cd.Year.Int()
	month, okMonth := cd.Month.Int()
	if !okYear || !okMonth || year == 0 || month == 0 {
		return ""
	}
	return fmt.Sprintf("%d-%02d-15", year, month)
}
