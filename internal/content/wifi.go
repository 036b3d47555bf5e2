package content

import "fmt"

const defaultEncryption = "WPA"

type wifi struct {
	SSID       string `json:"ssid" validate:"required"`
	Password   string `json:"password"`
	Encryption string `json:"encryption"`
}

func newWiFi(r *Request) Content {
	return wifi{SSID: r.SSID, Password: r.Password, Encryption: r.Encryption}
}

func (wifi) Kind() Kind { return KindWiFi }

func (w wifi) Payload() string {
	enc := w.Encryption
	if enc == "" {
		enc = defaultEncryption
	}
	return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;H:;", enc, w.SSID, w.Password)
}
