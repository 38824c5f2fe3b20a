package model

// Capability — право на действие. Набор прав вычисляется один раз на запрос
// из роли в токене, дальше проверки идут по готовому набору
type Capability string

const (
	CapSpin        Capability = "spin"
	CapDeposit     Capability = "deposit"
	CapAdminUnlock Capability = "admin_unlock"
)

type Capabilities map[Capability]struct{}

func (c Capabilities) Has(cap Capability) bool {
	_, ok := c[cap]
	return ok
}

func CapabilitiesForRole(role string) Capabilities {
	switch role {
	case RoleAdmin:
		return Capabilities{
			CapSpin:        {},
			CapDeposit:     {},
			CapAdminUnlock: {},
		}
	default:
		return Capabilities{
			CapSpin:    {},
			CapDeposit: {},
		}
	}
}
