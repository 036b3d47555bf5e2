package content

// Kind identifies one of the supported content variants.
type Kind string

const (
	KindWiFi    Kind = "WiFi"
	KindMenu    Kind = "Menu"
	KindWebsite Kind = "Website"
	KindPDF     Kind = "PDF"
	KindVCard   Kind = "VCard"
	KindCoupon  Kind = "Coupon"
)

// kindAliases maps legacy tags still sent by older clients.
var kindAliases = map[string]Kind{
	"Cupon": KindCoupon,
}

// Kinds lists the supported kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindWiFi, KindMenu, KindWebsite, KindPDF, KindVCard, KindCoupon}
}

// ParseKind resolves a transport tag into a Kind.
func ParseKind(tag string) (Kind, bool) {
	if alias, ok := kindAliases[tag]; ok {
		return alias, true
	}
	k := Kind(tag)
	if _, ok := variants[k]; ok {
		return k, true
	}
	return "", false
}

func (k Kind) String() string { return string(k) }
