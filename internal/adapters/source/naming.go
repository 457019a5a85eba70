package source

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
)

// Corpus file names look like 03-YY-City17-flights.json.
var fileNamePattern = regexp.MustCompile(`^(\d{2})-([^-/]+)-(.+)-flights\.json$`)

// FileName builds the corpus file name for a month and origin city.
func FileName(month int, yearToken, city string) string {
	return fmt.Sprintf("%02d-%s-%s-flights.json", month, yearToken, city)
}

// ParseFileName extracts month and city from a corpus file name. ok is false
// when the name does not follow the convention or the month is out of range.
func ParseFileName(name string) (month int, city string, ok bool) {
	m := fileNamePattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return 0, "", false
	}
	month, err := strconv.Atoi(m[1])
	if err != nil || month < 1 || month > 12 {
		return 0, "", false
	}
	return month, m[3], true
}
