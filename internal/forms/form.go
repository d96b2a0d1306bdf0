package forms

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/manifoldco/promptui"
)

// FormData is one survey submission: the details printed on the pack's
// label plus the register listing read from it.
type FormData struct {
	OneKeyID         string
	Date             string
	SerialNumber     string
	Sticker          string
	BatteryType      string
	Capacity         string
	DiagnosticOutput string
}

// Form field ids of the survey.
const (
	fieldOneKeyID     = "entry.905246449"
	fieldDate         = "entry.453401884"
	fieldSerialNumber = "entry.2131879277"
	fieldSticker      = "entry.337435885"
	fieldBatteryType  = "entry.1496274605"
	fieldCapacity     = "entry.324224550"
	fieldDiagnostic   = "entry.716337020"
)

// Values encodes the submission as form fields.
func (d FormData) Values() url.Values {
	v := url.Values{}
	v.Set(fieldOneKeyID, d.OneKeyID)
	v.Set(fieldDate, d.Date)
	v.Set(fieldSerialNumber, d.SerialNumber)
	v.Set(fieldSticker, d.Sticker)
	v.Set(fieldBatteryType, d.BatteryType)
	v.Set(fieldCapacity, d.Capacity)
	v.Set(fieldDiagnostic, d.DiagnosticOutput)
	return v
}

// Collect prompts for the label details and fills them into d. The
// diagnostic output is left untouched.
func Collect(d *FormData) error {
	fmt.Println("Please provide this information. All the values can be found on the label under the battery.")

	fields := []struct {
		label   string
		example string
		dst     *string
	}{
		{"One-Key ID", "H18FDCAD", &d.OneKeyID},
		{"Date", "190316", &d.Date},
		{"Serial number", "0807426", &d.SerialNumber},
		{"Sticker", "4932 4512 45", &d.Sticker},
		{"Type", "M18B9", &d.BatteryType},
		{"Capacity", "9.0Ah", &d.Capacity},
	}

	for _, f := range fields {
		prompt := promptui.Prompt{
			Label:    fmt.Sprintf("%s (example: %s)", f.label, f.example),
			Validate: notBlank,
		}
		value, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", strings.ToLower(f.label), err)
		}
		*f.dst = strings.TrimSpace(value)
	}
	return nil
}

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value required")
	}
	return nil
}
