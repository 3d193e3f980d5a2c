package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Имена полей формы бронирования (совпадают с ключами JSON и metadata)
const (
	FieldFirstName     = "firstName"
	FieldLastName      = "lastName"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldAddress       = "address"
	FieldSuburb        = "suburb"
	FieldPostcode      = "postcode"
	FieldPreferredDate = "preferredDate"
	FieldNotes         = "notes"
)

// ErrUnknownField возвращается при обращении к несуществующему полю формы
var ErrUnknownField = errors.New("domain: unknown form field")

// Правила формата полей формы: email, австралийский телефон,
// четырёхзначный почтовый индекс.
var (
	emailRegexp    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phoneRegexp    = regexp.MustCompile(`^(?:\+?61|0)[2-478](?:[ -]?[0-9]){8}$`)
	postcodeRegexp = regexp.MustCompile(`^[0-9]{4}$`)
)

// CustomerDetails данные клиента из формы бронирования.
// Notes - единственное необязательное поле.
type CustomerDetails struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Address       string
	Suburb        string
	Postcode      string
	PreferredDate string // YYYY-MM-DD
	Notes         string
}

// RequiredFields список обязательных полей в порядке отображения формы
var RequiredFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldAddress,
	FieldSuburb,
	FieldPostcode,
	FieldPreferredDate,
}

// SetField устанавливает значение поля по имени
func (d *CustomerDetails) SetField(name, value string) error {
	switch name {
	case FieldFirstName:
		d.FirstName = value
	case FieldLastName:
		d.LastName = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldAddress:
		d.Address = value
	case FieldSuburb:
		d.Suburb = value
	case FieldPostcode:
		d.Postcode = value
	case FieldPreferredDate:
		d.PreferredDate = value
	case FieldNotes:
		d.Notes = value
	default:
		return ErrUnknownField
	}
	return nil
}

// ValidateField проверяет одно поле.
// Возвращает сообщение об ошибке или пустую строку, если поле корректно.
// Ошибки валидации - это сообщения для формы, они никогда не прерывают сессию.
func (d *CustomerDetails) ValidateField(name string) string {
	switch name {
	case FieldFirstName:
		if strings.TrimSpace(d.FirstName) == "" {
			return "First name is required"
		}
	case FieldLastName:
		if strings.TrimSpace(d.LastName) == "" {
			return "Last name is required"
		}
	case FieldEmail:
		if strings.TrimSpace(d.Email) == "" {
			return "Email is required"
		}
		if !emailRegexp.MatchString(d.Email) {
			return "Invalid email address"
		}
	case FieldPhone:
		if strings.TrimSpace(d.Phone) == "" {
			return "Phone number is required"
		}
		if !phoneRegexp.MatchString(d.Phone) {
			return "Invalid Australian phone number"
		}
	case FieldAddress:
		if strings.TrimSpace(d.Address) == "" {
			return "Address is required"
		}
	case FieldSuburb:
		if strings.TrimSpace(d.Suburb) == "" {
			return "Suburb is required"
		}
	case FieldPostcode:
		if strings.TrimSpace(d.Postcode) == "" {
			return "Postcode is required"
		}
		if !postcodeRegexp.MatchString(d.Postcode) {
			return "Invalid postcode"
		}
	case FieldPreferredDate:
		if strings.TrimSpace(d.PreferredDate) == "" {
			return "Preferred date is required"
		}
		// Прошедшие даты не отклоняются, проверяется только формат
		if _, err := time.Parse(DateFormat, d.PreferredDate); err != nil {
			return "Invalid date, expected YYYY-MM-DD"
		}
	case FieldNotes:
		// Notes необязательно, но ограничено лимитом metadata
		if len(d.Notes) > MaxNotesLength {
			return fmt.Sprintf("Notes must be %d characters or fewer", MaxNotesLength)
		}
	}
	return ""
}

// Validate проверяет все обязательные поля и возвращает ошибки по полям
func (d *CustomerDetails) Validate() map[string]string {
	fieldErrors := make(map[string]string)
	for _, field := range RequiredFields {
		if msg := d.ValidateField(field); msg != "" {
			fieldErrors[field] = msg
		}
	}
	if msg := d.ValidateField(FieldNotes); msg != "" {
		fieldErrors[FieldNotes] = msg
	}
	return fieldErrors
}

// IsComplete true, если все обязательные поля одновременно валидны
func (d *CustomerDetails) IsComplete() bool {
	return len(d.Validate()) == 0
}

// MetadataSnapshot возвращает плоский срез данных клиента для metadata
// платёжного интента - единственной долговременной записи о бронировании.
func (d *CustomerDetails) MetadataSnapshot() map[string]string {
	return map[string]string{
		FieldFirstName:     d.FirstName,
		FieldLastName:      d.LastName,
		FieldEmail:         d.Email,
		FieldPhone:         d.Phone,
		FieldAddress:       d.Address,
		FieldSuburb:        d.Suburb,
		FieldPostcode:      d.Postcode,
		FieldPreferredDate: d.PreferredDate,
		FieldNotes:         d.Notes,
	}
}
