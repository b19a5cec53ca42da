package domain

import (
	"encoding/json"
	"time"
)

// Formato de fecha usado por la API (dd/MM/yyyy).
const BirthDateLayout = "02/01/2006"

// BirthDate serializa fechas de nacimiento como "20/10/1998".
type BirthDate struct {
	time.Time
}

func NewBirthDate(t time.Time) BirthDate {
	return BirthDate{Time: t}
}

func (d BirthDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(d.Format(BirthDateLayout))
}

func (d *BirthDate) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(BirthDateLayout, raw)
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}

// Age calcula la edad en años cumplidos a la fecha de referencia.
func Age(birth, ref time.Time) int {
	years := ref.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(ref) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
