package content

import (
	"fmt"
	"strings"
)

type menu struct {
	Items []MenuItem `json:"items" validate:"required,min=1,dive"`
}

func newMenu(r *Request) Content {
	return menu{Items: r.Items}
}

func (menu) Kind() Kind { return KindMenu }

func (m menu) Payload() string {
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		lines[i] = fmt.Sprintf("%d. %s - %s (%s)", i+1, item.Name, item.Price, item.Link)
	}
	return strings.Join(lines, "\n")
}
