package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

// FechaVenta turns YYYY-MM-DD into the D/M/YYYY string sales are stored
// with. Day and month are not zero padded: 2024-03-05 -> "5/3/2024".
func FechaVenta(iso string) (string, error) {
	t, err := time.Parse(isoLayout, iso)
	if err != nil {
		return "", fmt.Errorf("fecha inválida %q: %w", iso, err)
	}
	return FormatoVenta(t), nil
}

func FormatoVenta(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// FormatoFecha is the DD/MM/YYYY form used by pagos and trabajos.
func FormatoFecha(t time.Time) string {
	return t.Format("02/01/2006")
}

func FormatoISO(t time.Time) string {
	return t.Format(isoLayout)
}

// ParseFecha reads DD/MM/YYYY or D/M/YYYY by splitting on "/".
func ParseFecha(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("fecha inválida %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("fecha inválida %q: %w", s, err)
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("fecha inválida %q", s)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// MesClave is the YYYY-MM prefix of a register date key.
func MesClave(fecha string) string {
	if len(fecha) < 7 {
		return fecha
	}
	return fecha[:7]
}
