package content

type coupon struct {
	CouponCode string `json:"couponCode" validate:"required"`
	Discount   Amount `json:"discount" validate:"required"`
	Expiration string `json:"expiration"`
}

func newCoupon(r *Request) Content {
	return coupon{CouponCode: r.CouponCode, Discount: r.Discount, Expiration: r.Expiration}
}

func (coupon) Kind() Kind { return KindCoupon }

func (c coupon) Payload() string {
	s := "Cupón: " + c.CouponCode + "\nDescuento: " + c.Discount.String()
	if c.Expiration != "" {
		s += "\nVálido hasta: " + c.Expiration
	}
	return s
}
