package content

type website struct {
	Text string `json:"text" validate:"required"`
}

func newWebsite(r *Request) Content {
	return website{Text: r.Text}
}

func (website) Kind() Kind { return KindWebsite }

func (w website) Payload() string { return w.Text }
