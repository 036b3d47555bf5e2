package content

import "strings"

type vcard struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Address  string `json:"address"`
	Company  string `json:"company"`
	JobTitle string `json:"jobTitle"`
	Website  string `json:"website"`
	Birthday string `json:"birthday"`
}

func newVCard(r *Request) Content {
	return vcard{
		Name:     r.Name,
		Phone:    r.Phone,
		Email:    r.Email,
		Address:  r.Address,
		Company:  r.Company,
		JobTitle: r.JobTitle,
		Website:  r.Website,
		Birthday: r.Birthday,
	}
}

func (vcard) Kind() Kind { return KindVCard }

// Payload emits a vCard 3.0 block. Optional properties with an empty value
// are left out instead of producing blank lines.
func (v vcard) Payload() string {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:" + v.Name,
		"TEL:" + v.Phone,
		"EMAIL:" + v.Email,
	}
	optional := []struct{ prop, value string }{
		{"ADR", v.Address},
		{"ORG", v.Company},
		{"TITLE", v.JobTitle},
		{"URL", v.Website},
		{"BDAY", v.Birthday},
	}
	for _, o := range optional {
		if o.value != "" {
			lines = append(lines, o.prop+":"+o.value)
		}
	}
	lines = append(lines, "END:VCARD")
	return strings.Join(lines, "\n")
}
