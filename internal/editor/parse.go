package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/kochbuch/internal/domain"
)

// ParseIngredient reads an "<amount> <unit> <name>" line such as
// "200 g Mehl" or "0,5 l Milch". The unit must be one of domain.Units.
func ParseIngredient(line string) (domain.Ingredient, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return domain.Ingredient{}, fmt.Errorf("%q: want <amount> <unit> <name>: %w", line, domain.ErrIncomplete)
	}

	amount, err := strconv.ParseFloat(strings.Replace(fields[0], ",", ".", 1), 64)
	if err != nil {
		return domain.Ingredient{}, fmt.Errorf("parsing amount %q: %w", fields[0], err)
	}

	unit, ok := domain.CanonicalUnit(fields[1])
	if !ok {
		return domain.Ingredient{}, fmt.Errorf("%q (known: %s): %w", fields[1], strings.Join(domain.Units, ", "), domain.ErrUnknownUnit)
	}

	return domain.Ingredient{
		Name:   strings.Join(fields[2:], " "),
		Amount: amount,
		Unit:   unit,
	}, nil
}
