package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() CustomerDetails {
	return CustomerDetails{
		FirstName:     "Jane",
		LastName:      "Citizen",
		Email:         "jane@example.com",
		Phone:         "0412 345 678",
		Address:       "12 Poolside Ave",
		Suburb:        "Glenelg",
		Postcode:      "5045",
		PreferredDate: "2026-09-15",
	}
}

func TestCustomerDetails_IsComplete(t *testing.T) {
	details := validDetails()
	assert.True(t, details.IsComplete())
	assert.Empty(t, details.Validate())

	// Пустые Notes не влияют на полноту формы
	details.Notes = ""
	assert.True(t, details.IsComplete())

	// Слишком длинные Notes блокируют форму до ухода в metadata
	details.Notes = strings.Repeat("a", MaxNotesLength+1)
	assert.False(t, details.IsComplete())
	assert.Contains(t, details.Validate(), FieldNotes)
}

func TestCustomerDetails_EmptyRequiredFieldBlocksCompleteness(t *testing.T) {
	// Обнуление любого обязательного поля делает форму неполной
	for _, field := range RequiredFields {
		details := validDetails()
		require.NoError(t, details.SetField(field, ""))

		assert.False(t, details.IsComplete(), "field %s", field)
		assert.Contains(t, details.Validate(), field)
	}
}

func TestCustomerDetails_ValidateField(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		wantErr bool
	}{
		{"valid email", FieldEmail, "a@b.com", false},
		{"email without domain", FieldEmail, "a@b", true},
		{"email without at", FieldEmail, "nobody.example.com", true},
		{"valid mobile", FieldPhone, "0412345678", false},
		{"valid mobile with country code", FieldPhone, "+61412345678", false},
		{"valid landline with spaces", FieldPhone, "08 8123 4567", false},
		{"phone too short", FieldPhone, "041234", true},
		{"phone wrong prefix", FieldPhone, "0912345678", true},
		{"valid postcode", FieldPostcode, "5045", false},
		{"postcode too short", FieldPostcode, "504", true},
		{"postcode with letters", FieldPostcode, "5O45", true},
		{"valid date", FieldPreferredDate, "2026-01-31", false},
		{"date wrong format", FieldPreferredDate, "31/01/2026", true},
		{"past date accepted", FieldPreferredDate, "2020-01-01", false},
		{"empty notes valid", FieldNotes, "", false},
		{"notes at limit valid", FieldNotes, strings.Repeat("a", MaxNotesLength), false},
		{"notes over limit rejected", FieldNotes, strings.Repeat("a", MaxNotesLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := validDetails()
			require.NoError(t, details.SetField(tt.field, tt.value))

			msg := details.ValidateField(tt.field)
			if tt.wantErr {
				assert.NotEmpty(t, msg)
			} else {
				assert.Empty(t, msg)
			}
		})
	}
}

func TestCustomerDetails_SetFieldUnknown(t *testing.T) {
	details := validDetails()
	err := details.SetField("favouriteColour", "teal")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestCustomerDetails_MetadataSnapshot(t *testing.T) {
	details := validDetails()
	details.Notes = "gate is locked"

	snapshot := details.MetadataSnapshot()

	assert.Equal(t, "jane@example.com", snapshot[FieldEmail])
	assert.Equal(t, "gate is locked", snapshot[FieldNotes])
	assert.Len(t, snapshot, 9)
}
