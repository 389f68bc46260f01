package user

// Principal is the authenticated caller. Accounts live in the auth service;
// this service only sees the verified token claims.
type Principal struct {
	phone Phone
	role  Role
}

func NewPrincipal(subject string, role string) (*Principal, error) {
	phone, err := NewPhone(subject)
	if err != nil {
		return nil, err
	}
	r, err := NewRole(role)
	if err != nil {
		return nil, err
	}
	return &Principal{phone: phone, role: r}, nil
}

func (p *Principal) Phone() Phone { return p.phone }
func (p *Principal) Role() Role   { return p.role }

// StudentID is the opaque key orders are recorded under.
func (p *Principal) StudentID() string { return p.phone.Value() }
